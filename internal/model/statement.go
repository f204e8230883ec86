package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a dated amount, as carried by LEDGERBAL and AVAILBAL.
type Balance struct {
	DtAsOf time.Time
	Amount decimal.Decimal
}

// OtherBalance is one named BAL entry from a BALLIST, minus the name that
// keys it in the statement's map.
type OtherBalance struct {
	Desc    string
	BalType string
	Value   decimal.Decimal
	DtAsOf  time.Time
	CurRate decimal.Decimal
	CurSym  string
}

// BankStatement is the flattened result of a STMTRS response.
type BankStatement struct {
	Account          *BankAccount
	CurDef           string
	Transactions     []*Transaction
	Start            time.Time
	End              time.Time
	LedgerBalance    Balance
	AvailableBalance *Balance
	OtherBalances    map[string]*OtherBalance
}

// CreditCardStatement is the flattened result of a CCSTMTRS response. It
// differs from a bank statement only in its account variant.
type CreditCardStatement struct {
	Account          *CCAccount
	CurDef           string
	Transactions     []*Transaction
	Start            time.Time
	End              time.Time
	LedgerBalance    Balance
	AvailableBalance *Balance
	OtherBalances    map[string]*OtherBalance
}

// InvestmentStatement is the flattened result of an INVSTMTRS response plus
// the document-level SECLIST. Every SecID reachable from Transactions,
// Positions and Prices is a member of Securities.
type InvestmentStatement struct {
	Account       *InvAccount
	CurDef        string
	DtAsOf        time.Time
	Transactions  []*InvTransaction
	Start         time.Time
	End           time.Time
	Positions     []*Position
	Prices        []*Price
	Securities    map[SecurityID]*Security
	OtherBalances map[string]*OtherBalance

	// Free-form balance fields absorbed from the INVBAL dregs.
	AvailCash     decimal.Decimal
	MarginBalance decimal.Decimal
	ShortBalance  decimal.Decimal
	BuyPower      decimal.Decimal
}
