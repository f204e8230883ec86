package ofx

import (
	"fmt"
	"time"

	"github.com/Veraticus/paper-trail/internal/model"
	"github.com/shopspring/decimal"
)

// The constructors below turn flattened attribute maps into typed records.
// Unknown attribute keys are fatal: the schema registry already enumerates
// the accepted keys per aggregate, so anything unexpected reaching a
// constructor is a schema defect, not data to absorb silently.

func badAttr(tag, key string, val any) error {
	return &SchemaError{Tag: tag, Msg: fmt.Sprintf("unexpected type %T for attribute %q", val, key)}
}

func unknownAttr(tag, key string) error {
	return &SchemaError{Tag: tag, Msg: fmt.Sprintf("unknown attribute %q", key)}
}

func newBankAccount(attrs map[string]any) (*model.BankAccount, error) {
	var a model.BankAccount
	for key, val := range attrs {
		ok := true
		switch key {
		case "bankid":
			a.BankID, ok = val.(string)
		case "branchid":
			a.BranchID, ok = val.(string)
		case "acctid":
			a.AcctID, ok = val.(string)
		case "accttype":
			a.AcctType, ok = val.(string)
		case "acctkey":
			a.AcctKey, ok = val.(string)
		default:
			return nil, unknownAttr("BANKACCTFROM", key)
		}
		if !ok {
			return nil, badAttr("BANKACCTFROM", key, val)
		}
	}
	return &a, nil
}

func newCCAccount(attrs map[string]any) (*model.CCAccount, error) {
	var a model.CCAccount
	for key, val := range attrs {
		ok := true
		switch key {
		case "acctid":
			a.AcctID, ok = val.(string)
		case "acctkey":
			a.AcctKey, ok = val.(string)
		default:
			return nil, unknownAttr("CCACCTFROM", key)
		}
		if !ok {
			return nil, badAttr("CCACCTFROM", key, val)
		}
	}
	return &a, nil
}

func newInvAccount(attrs map[string]any) (*model.InvAccount, error) {
	var a model.InvAccount
	for key, val := range attrs {
		ok := true
		switch key {
		case "brokerid":
			a.BrokerID, ok = val.(string)
		case "acctid":
			a.AcctID, ok = val.(string)
		default:
			return nil, unknownAttr("INVACCTFROM", key)
		}
		if !ok {
			return nil, badAttr("INVACCTFROM", key, val)
		}
	}
	return &a, nil
}

func newTransaction(attrs map[string]any) (*model.Transaction, error) {
	var t model.Transaction
	for key, val := range attrs {
		ok := true
		switch key {
		case "type":
			t.Type, ok = val.(string)
		case "trntype":
			t.TrnType, ok = val.(string)
		case "fitid":
			t.FiTID, ok = val.(string)
		case "dtposted":
			t.DtPosted, ok = val.(time.Time)
		case "dtuser":
			t.DtUser, ok = val.(time.Time)
		case "dtavail":
			t.DtAvail, ok = val.(time.Time)
		case "trnamt":
			t.TrnAmt, ok = val.(decimal.Decimal)
		case "name":
			t.Name, ok = val.(string)
		case "memo":
			t.Memo, ok = val.(string)
		case "checknum":
			t.CheckNum, ok = val.(string)
		case "refnum":
			t.RefNum, ok = val.(string)
		case "sic":
			t.SIC, ok = val.(int)
		case "payeeid":
			t.PayeeID, ok = val.(string)
		case "srvrtid":
			t.SrvrTID, ok = val.(string)
		case "correctfitid":
			t.CorrectFiTID, ok = val.(string)
		case "correctaction":
			t.CorrectAction, ok = val.(string)
		case "currate":
			t.CurRate, ok = val.(decimal.Decimal)
		case "cursym":
			t.CurSym, ok = val.(string)
		default:
			return nil, unknownAttr("STMTTRN", key)
		}
		if !ok {
			return nil, badAttr("STMTTRN", key, val)
		}
	}
	return &t, nil
}

func newInvTransaction(attrs map[string]any) (*model.InvTransaction, error) {
	var t model.InvTransaction
	for key, val := range attrs {
		ok := true
		switch key {
		case "type":
			t.Type, ok = val.(string)
		case "fitid":
			t.FiTID, ok = val.(string)
		case "srvrtid":
			t.SrvrTID, ok = val.(string)
		case "dttrade":
			t.DtTrade, ok = val.(time.Time)
		case "dtsettle":
			t.DtSettle, ok = val.(time.Time)
		case "reversalfitid":
			t.ReversalFiTID, ok = val.(string)
		case "memo":
			t.Memo, ok = val.(string)
		case "secid":
			t.SecID, ok = val.(*model.Security)
		case "units":
			t.Units, ok = val.(decimal.Decimal)
		case "unitprice":
			t.UnitPrice, ok = val.(decimal.Decimal)
		case "markup":
			t.Markup, ok = val.(decimal.Decimal)
		case "markdown":
			t.Markdown, ok = val.(decimal.Decimal)
		case "commission":
			t.Commission, ok = val.(decimal.Decimal)
		case "taxes":
			t.Taxes, ok = val.(decimal.Decimal)
		case "fees":
			t.Fees, ok = val.(decimal.Decimal)
		case "load":
			t.Load, ok = val.(decimal.Decimal)
		case "total":
			t.Total, ok = val.(decimal.Decimal)
		case "gain":
			t.Gain, ok = val.(decimal.Decimal)
		case "accrdint":
			t.AccrdInt, ok = val.(decimal.Decimal)
		case "avgcostbasis":
			t.AvgCostBasis, ok = val.(decimal.Decimal)
		case "withholding":
			t.Withholding, ok = val.(decimal.Decimal)
		case "statewithholding":
			t.StateWithholding, ok = val.(decimal.Decimal)
		case "penalty":
			t.Penalty, ok = val.(decimal.Decimal)
		case "taxexempt":
			t.TaxExempt, ok = val.(bool)
		case "subacctsec":
			t.SubAcctSec, ok = val.(string)
		case "subacctfund":
			t.SubAcctFund, ok = val.(string)
		case "subacctto":
			t.SubAcctTo, ok = val.(string)
		case "subacctfrom":
			t.SubAcctFrom, ok = val.(string)
		case "buytype":
			t.BuyType, ok = val.(string)
		case "optbuytype":
			t.OptBuyType, ok = val.(string)
		case "selltype":
			t.SellType, ok = val.(string)
		case "sellreason":
			t.SellReason, ok = val.(string)
		case "optselltype":
			t.OptSellType, ok = val.(string)
		case "optaction":
			t.OptAction, ok = val.(string)
		case "incometype":
			t.IncomeType, ok = val.(string)
		case "relfitid":
			t.RelFiTID, ok = val.(string)
		case "reltype":
			t.RelType, ok = val.(string)
		case "secured":
			t.Secured, ok = val.(string)
		case "shperctrct":
			t.ShPerCtrct, ok = val.(int)
		case "tferaction":
			t.TferAction, ok = val.(string)
		case "postype":
			t.PosType, ok = val.(string)
		case "dtpurchase":
			t.DtPurchase, ok = val.(time.Time)
		case "oldunits":
			t.OldUnits, ok = val.(decimal.Decimal)
		case "newunits":
			t.NewUnits, ok = val.(decimal.Decimal)
		case "numerator":
			t.Numerator, ok = val.(decimal.Decimal)
		case "denominator":
			t.Denominator, ok = val.(decimal.Decimal)
		case "fraccash":
			t.FracCash, ok = val.(decimal.Decimal)
		case "loanid":
			t.LoanID, ok = val.(string)
		case "loanprincipal":
			t.LoanPrincipal, ok = val.(decimal.Decimal)
		case "loaninterest":
			t.LoanInterest, ok = val.(decimal.Decimal)
		case "inv401ksource":
			t.Inv401KSource, ok = val.(string)
		case "dtpayroll":
			t.DtPayroll, ok = val.(time.Time)
		case "prioryearcontrib":
			t.PriorYearContrib, ok = val.(bool)
		case "currate":
			t.CurRate, ok = val.(decimal.Decimal)
		case "cursym":
			t.CurSym, ok = val.(string)
		default:
			return nil, unknownAttr("INVTRAN", key)
		}
		if !ok {
			return nil, badAttr("INVTRAN", key, val)
		}
	}
	return &t, nil
}

func newSecurity(attrs map[string]any) (*model.Security, error) {
	var s model.Security
	for key, val := range attrs {
		ok := true
		switch key {
		case "type":
			s.Type, ok = val.(string)
		case "uniqueidtype":
			s.UniqueIDType, ok = val.(string)
		case "uniqueid":
			s.UniqueID, ok = val.(string)
		case "secname":
			s.SecName, ok = val.(string)
		case "ticker":
			s.Ticker, ok = val.(string)
		case "fiid":
			s.FiID, ok = val.(string)
		case "rating":
			s.Rating, ok = val.(string)
		case "unitprice":
			s.UnitPrice, ok = val.(decimal.Decimal)
		case "dtasof":
			s.DtAsOf, ok = val.(time.Time)
		case "memo":
			s.Memo, ok = val.(string)
		case "assetclass":
			s.AssetClass, ok = val.(string)
		case "fiassetclass":
			s.FiAssetClass, ok = val.(string)
		case "stocktype":
			s.StockType, ok = val.(string)
		case "mftype":
			s.MFType, ok = val.(string)
		case "yield":
			s.Yield, ok = val.(decimal.Decimal)
		case "dtyieldasof":
			s.DtYieldAsOf, ok = val.(time.Time)
		case "parvalue":
			s.ParValue, ok = val.(decimal.Decimal)
		case "debttype":
			s.DebtType, ok = val.(string)
		case "debtclass":
			s.DebtClass, ok = val.(string)
		case "couponrt":
			s.CouponRt, ok = val.(decimal.Decimal)
		case "dtcoupon":
			s.DtCoupon, ok = val.(time.Time)
		case "couponfreq":
			s.CouponFreq, ok = val.(string)
		case "callprice":
			s.CallPrice, ok = val.(decimal.Decimal)
		case "yieldtocall":
			s.YieldToCall, ok = val.(decimal.Decimal)
		case "dtcall":
			s.DtCall, ok = val.(time.Time)
		case "calltype":
			s.CallType, ok = val.(string)
		case "yieldtomat":
			s.YieldToMat, ok = val.(decimal.Decimal)
		case "dtmat":
			s.DtMat, ok = val.(time.Time)
		case "opttype":
			s.OptType, ok = val.(string)
		case "strikeprice":
			s.StrikePrice, ok = val.(decimal.Decimal)
		case "dtexpire":
			s.DtExpire, ok = val.(time.Time)
		case "shperctrct":
			s.ShPerCtrct, ok = val.(int)
		case "typedesc":
			s.TypeDesc, ok = val.(string)
		case "currate":
			s.CurRate, ok = val.(decimal.Decimal)
		case "cursym":
			s.CurSym, ok = val.(string)
		default:
			return nil, unknownAttr("SECINFO", key)
		}
		if !ok {
			return nil, badAttr("SECINFO", key, val)
		}
	}
	return &s, nil
}

// newPosition builds a Position and splits the pricing data off into its
// Price. Every position contributes exactly one price.
func newPosition(attrs map[string]any) (*model.Position, *model.Price, error) {
	var p model.Position
	var price model.Price
	for key, val := range attrs {
		ok := true
		switch key {
		case "type":
			p.Type, ok = val.(string)
		case "secid":
			p.SecID, ok = val.(*model.Security)
		case "heldinacct":
			p.HeldInAcct, ok = val.(string)
		case "postype":
			p.PosType, ok = val.(string)
		case "units":
			p.Units, ok = val.(decimal.Decimal)
		case "unitprice":
			price.UnitPrice, ok = val.(decimal.Decimal)
		case "dtpriceasof":
			price.DtPriceAsOf, ok = val.(time.Time)
		case "mktval":
			p.MktVal, ok = val.(decimal.Decimal)
		case "memo":
			p.Memo, ok = val.(string)
		case "inv401ksource":
			p.Inv401KSource, ok = val.(string)
		case "unitsstreet":
			p.UnitsStreet, ok = val.(decimal.Decimal)
		case "unitsuser":
			p.UnitsUser, ok = val.(decimal.Decimal)
		case "reinvdiv":
			p.ReinvDiv, ok = val.(bool)
		case "reinvcg":
			p.ReinvCG, ok = val.(bool)
		case "secured":
			p.Secured, ok = val.(string)
		case "currate":
			p.CurRate, ok = val.(decimal.Decimal)
		case "cursym":
			p.CurSym, ok = val.(string)
		default:
			return nil, nil, unknownAttr("INVPOS", key)
		}
		if !ok {
			return nil, nil, badAttr("INVPOS", key, val)
		}
	}
	price.SecID = p.SecID
	return &p, &price, nil
}

func newOtherBalance(attrs map[string]any) (*model.OtherBalance, error) {
	var b model.OtherBalance
	for key, val := range attrs {
		ok := true
		switch key {
		case "desc":
			b.Desc, ok = val.(string)
		case "baltype":
			b.BalType, ok = val.(string)
		case "value":
			b.Value, ok = val.(decimal.Decimal)
		case "dtasof":
			b.DtAsOf, ok = val.(time.Time)
		case "currate":
			b.CurRate, ok = val.(decimal.Decimal)
		case "cursym":
			b.CurSym, ok = val.(string)
		default:
			return nil, unknownAttr("BAL", key)
		}
		if !ok {
			return nil, badAttr("BAL", key, val)
		}
	}
	return &b, nil
}
