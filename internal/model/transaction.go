package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one bank or credit-card statement transaction. Type is the
// list-item kind derived from the element tag; TrnType is the institution's
// declared transaction type (DEBIT, CREDIT, CHECK, ...).
type Transaction struct {
	Type          string
	TrnType       string
	FiTID         string
	DtPosted      time.Time
	DtUser        time.Time
	DtAvail       time.Time
	TrnAmt        decimal.Decimal
	Name          string
	Memo          string
	CheckNum      string
	RefNum        string
	SIC           int
	PayeeID       string
	SrvrTID       string
	CorrectFiTID  string
	CorrectAction string
	CurRate       decimal.Decimal
	CurSym        string
}

func (t *Transaction) String() string {
	return fmt.Sprintf("<Transaction %s>", t.FiTID)
}

// InvTransaction is one investment statement transaction. Type is the
// wrapper aggregate tag (BUYSTOCK, INCOME, TRANSFER, ...); the remaining
// fields are the union of the wrappers' attributes, zero where a given kind
// doesn't carry them. SecID, when set, is the resolved Security from the
// statement's security map — never a raw id pair.
type InvTransaction struct {
	Type          string
	FiTID         string
	SrvrTID       string
	DtTrade       time.Time
	DtSettle      time.Time
	ReversalFiTID string
	Memo          string
	SecID         *Security

	Units            decimal.Decimal
	UnitPrice        decimal.Decimal
	Markup           decimal.Decimal
	Markdown         decimal.Decimal
	Commission       decimal.Decimal
	Taxes            decimal.Decimal
	Fees             decimal.Decimal
	Load             decimal.Decimal
	Total            decimal.Decimal
	Gain             decimal.Decimal
	AccrdInt         decimal.Decimal
	AvgCostBasis     decimal.Decimal
	Withholding      decimal.Decimal
	StateWithholding decimal.Decimal
	Penalty          decimal.Decimal
	TaxExempt        bool

	SubAcctSec  string
	SubAcctFund string
	SubAcctTo   string
	SubAcctFrom string

	BuyType     string
	OptBuyType  string
	SellType    string
	SellReason  string
	OptSellType string
	OptAction   string
	IncomeType  string
	RelFiTID    string
	RelType     string
	Secured     string
	ShPerCtrct  int

	// TRANSFER
	TferAction string
	PosType    string
	DtPurchase time.Time

	// SPLIT
	OldUnits    decimal.Decimal
	NewUnits    decimal.Decimal
	Numerator   decimal.Decimal
	Denominator decimal.Decimal
	FracCash    decimal.Decimal

	LoanID           string
	LoanPrincipal    decimal.Decimal
	LoanInterest     decimal.Decimal
	Inv401KSource    string
	DtPayroll        time.Time
	PriorYearContrib bool

	CurRate decimal.Decimal
	CurSym  string
}

func (t *InvTransaction) String() string {
	return fmt.Sprintf("<InvTransaction %s>", t.FiTID)
}
