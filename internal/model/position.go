package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is one holding from INVPOSLIST. The pricing data that rides along
// in INVPOS (unitprice, dtpriceasof) is split off into a Price at
// construction time; every Position contributes exactly one Price to its
// statement's price list and never carries one itself.
type Position struct {
	Type          string
	SecID         *Security
	HeldInAcct    string
	PosType       string
	Units         decimal.Decimal
	MktVal        decimal.Decimal
	Memo          string
	Inv401KSource string

	// POSSTOCK / POSMF
	UnitsStreet decimal.Decimal
	UnitsUser   decimal.Decimal
	ReinvDiv    bool
	ReinvCG     bool

	// POSOPT
	Secured string

	CurRate decimal.Decimal
	CurSym  string
}

// Price is one security price observation.
type Price struct {
	SecID       *Security
	UnitPrice   decimal.Decimal
	DtPriceAsOf time.Time
}
