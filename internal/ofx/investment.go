package ofx

import (
	"strings"
	"time"

	"github.com/Veraticus/paper-trail/internal/model"
	"github.com/shopspring/decimal"
)

// buildInvestmentStatement assembles an investment statement from the
// document-level SECLIST and the INVSTMTRS subtree. Securities are built
// first; a SECID handler is then registered so every subsequent SECID in
// transactions and positions resolves to an already-constructed Security.
func buildInvestmentStatement(schema Schema, seclist, invstmtrs *Element) (*model.InvestmentStatement, error) {
	f := newFlattener(schema)

	securities, err := buildSecurities(f, seclist)
	if err != nil {
		return nil, err
	}
	f.handlers["SECID"] = func(el *Element) (map[string]any, error) {
		attrs, err := f.flatten(el, true)
		if err != nil {
			return nil, err
		}
		id := model.SecurityID{}
		var ok bool
		if id.UniqueIDType, ok = attrs["uniqueidtype"].(string); !ok {
			return nil, badAttr(el.Tag, "uniqueidtype", attrs["uniqueidtype"])
		}
		if id.UniqueID, ok = attrs["uniqueid"].(string); !ok {
			return nil, badAttr(el.Tag, "uniqueid", attrs["uniqueid"])
		}
		sec, found := securities[id]
		if !found {
			return nil, &UnresolvedSecurityError{UniqueIDType: id.UniqueIDType, UniqueID: id.UniqueID}
		}
		return map[string]any{"secid": sec}, nil
	}

	stmt := &model.InvestmentStatement{
		Securities:    securities,
		OtherBalances: map[string]*model.OtherBalance{},
	}

	if tranlist := invstmtrs.Child("INVTRANLIST"); tranlist != nil {
		start, end, items, err := f.tranList(tranlist)
		if err != nil {
			return nil, err
		}
		var ok bool
		if stmt.Start, ok = start.(time.Time); !ok {
			return nil, badAttr(tranlist.Tag, "dtstart", start)
		}
		if stmt.End, ok = end.(time.Time); !ok {
			return nil, badAttr(tranlist.Tag, "dtend", end)
		}
		for _, item := range items {
			attrs, err := f.listItem(item, KindInvTransaction, nil)
			if err != nil {
				return nil, err
			}
			txn, err := newInvTransaction(attrs)
			if err != nil {
				return nil, err
			}
			stmt.Transactions = append(stmt.Transactions, txn)
		}
		invstmtrs.Remove(tranlist)
	}

	if poslist := invstmtrs.Child("INVPOSLIST"); poslist != nil {
		for _, pos := range poslist.Children {
			attrs, err := f.listItem(pos, KindPosition, nil)
			if err != nil {
				return nil, err
			}
			position, price, err := newPosition(attrs)
			if err != nil {
				return nil, err
			}
			stmt.Positions = append(stmt.Positions, position)
			stmt.Prices = append(stmt.Prices, price)
		}
		invstmtrs.Remove(poslist)
	}

	// INVBAL stays in place once its BALLIST is stripped: its flat fields
	// are absorbed with the dregs below.
	if invbal := invstmtrs.Child("INVBAL"); invbal != nil {
		if ballist := invbal.Child("BALLIST"); ballist != nil {
			if stmt.OtherBalances, err = f.balList(ballist); err != nil {
				return nil, err
			}
			invbal.Remove(ballist)
		}
	}

	// Unsupported sections are dropped unread.
	for _, tag := range []string{"INVOOLIST", "INV401K", "INV401KBAL", "MKTGINFO"} {
		if el := invstmtrs.Child(tag); el != nil {
			invstmtrs.Remove(el)
		}
	}

	dregs, err := f.flatten(invstmtrs, true)
	if err != nil {
		return nil, err
	}

	acctAttrs := map[string]any{}
	for _, key := range []string{"brokerid", "acctid"} {
		val, found := dregs[key]
		if !found {
			return nil, &SchemaError{Tag: invstmtrs.Tag, Msg: "missing " + strings.ToUpper(key)}
		}
		acctAttrs[key] = val
		delete(dregs, key)
	}
	if stmt.Account, err = newInvAccount(acctAttrs); err != nil {
		return nil, err
	}

	for key, val := range dregs {
		ok := true
		switch key {
		case "curdef":
			stmt.CurDef, ok = val.(string)
		case "dtasof":
			stmt.DtAsOf, ok = val.(time.Time)
		case "availcash":
			stmt.AvailCash, ok = val.(decimal.Decimal)
		case "marginbalance":
			stmt.MarginBalance, ok = val.(decimal.Decimal)
		case "shortbalance":
			stmt.ShortBalance, ok = val.(decimal.Decimal)
		case "buypower":
			stmt.BuyPower, ok = val.(decimal.Decimal)
		default:
			return nil, unknownAttr(invstmtrs.Tag, key)
		}
		if !ok {
			return nil, badAttr(invstmtrs.Tag, key, val)
		}
	}
	return stmt, nil
}

// buildSecurities converts the document-level SECLIST into the statement's
// security map. Each entry's SECID is detached and flattened by hand so the
// generic flattener can't dispatch it to the SECID handler this map is being
// built for.
func buildSecurities(f *flattener, seclist *Element) (map[model.SecurityID]*model.Security, error) {
	securities := make(map[model.SecurityID]*model.Security, len(seclist.Children))
	for _, sec := range seclist.Children {
		secinfo := sec.Find("SECINFO")
		if secinfo == nil {
			return nil, &SchemaError{Tag: sec.Tag, Msg: "missing SECINFO"}
		}
		secid := secinfo.Child("SECID")
		if secid == nil {
			return nil, &SchemaError{Tag: sec.Tag, Msg: "missing SECID"}
		}
		secinfo.Remove(secid)

		leaves := make(map[string]string, len(secid.Children))
		for _, child := range secid.Children {
			leaves[strings.ToLower(child.Tag)] = strings.TrimSpace(child.Text)
		}
		extras, err := f.schema.ValidateAggregate("SECID", leaves)
		if err != nil {
			return nil, &SchemaError{Tag: "SECID", Err: err}
		}

		attrs, err := f.listItem(sec, KindSecurity, extras)
		if err != nil {
			return nil, err
		}
		security, err := newSecurity(attrs)
		if err != nil {
			return nil, err
		}
		securities[security.ID()] = security
	}
	return securities, nil
}
