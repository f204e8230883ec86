package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SecurityID is the (uniqueidtype, uniqueid) pair that identifies a security
// within a document. It keys the statement's security map.
type SecurityID struct {
	UniqueIDType string
	UniqueID     string
}

// Security is one entry of the document-level SECLIST. Type records which
// xxxINFO aggregate declared it (STOCKINFO, MFINFO, DEBTINFO, OPTINFO,
// OTHERINFO); the per-type fields are zero for the kinds they don't apply to.
type Security struct {
	Type         string
	UniqueIDType string
	UniqueID     string
	SecName      string
	Ticker       string
	FiID         string
	Rating       string
	UnitPrice    decimal.Decimal
	DtAsOf       time.Time
	Memo         string
	AssetClass   string
	FiAssetClass string

	// STOCKINFO / MFINFO
	StockType   string
	MFType      string
	Yield       decimal.Decimal
	DtYieldAsOf time.Time

	// DEBTINFO
	ParValue    decimal.Decimal
	DebtType    string
	DebtClass   string
	CouponRt    decimal.Decimal
	DtCoupon    time.Time
	CouponFreq  string
	CallPrice   decimal.Decimal
	YieldToCall decimal.Decimal
	DtCall      time.Time
	CallType    string
	YieldToMat  decimal.Decimal
	DtMat       time.Time

	// OPTINFO
	OptType     string
	StrikePrice decimal.Decimal
	DtExpire    time.Time
	ShPerCtrct  int

	// OTHERINFO
	TypeDesc string

	CurRate decimal.Decimal
	CurSym  string
}

// MarshalText renders the id pair as "type:id" so security maps keyed by
// SecurityID survive JSON encoding.
func (id SecurityID) MarshalText() ([]byte, error) {
	return []byte(id.UniqueIDType + ":" + id.UniqueID), nil
}

// ID returns the security's map key.
func (s *Security) ID() SecurityID {
	return SecurityID{UniqueIDType: s.UniqueIDType, UniqueID: s.UniqueID}
}

func (s *Security) String() string {
	if s.Ticker != "" {
		return fmt.Sprintf("<Security %s>", s.Ticker)
	}
	return fmt.Sprintf("<Security %s %s>", s.UniqueIDType, s.UniqueID)
}
