package ofx

import (
	"time"

	"github.com/Veraticus/paper-trail/internal/model"
	"github.com/shopspring/decimal"
)

// Bank and credit-card statements share everything except the account
// variant, so both are assembled from the same extracted parts.

type bankParts struct {
	curdef       string
	transactions []*model.Transaction
	start, end   time.Time
	ledger       model.Balance
	available    *model.Balance
	other        map[string]*model.OtherBalance
	acctAttrs    map[string]any
}

// extractBankParts walks a STMTRS or CCSTMTRS subtree, consuming the
// recognized sub-aggregates as it goes, and finally flattens the residual
// response into the account attributes.
func extractBankParts(f *flattener, stmtrs *Element) (*bankParts, error) {
	parts := &bankParts{other: map[string]*model.OtherBalance{}}

	if tranlist := stmtrs.Child("BANKTRANLIST"); tranlist != nil {
		start, end, items, err := f.tranList(tranlist)
		if err != nil {
			return nil, err
		}
		var ok bool
		if parts.start, ok = start.(time.Time); !ok {
			return nil, badAttr(tranlist.Tag, "dtstart", start)
		}
		if parts.end, ok = end.(time.Time); !ok {
			return nil, badAttr(tranlist.Tag, "dtend", end)
		}
		for _, item := range items {
			attrs, err := f.listItem(item, KindBankTransaction, nil)
			if err != nil {
				return nil, err
			}
			txn, err := newTransaction(attrs)
			if err != nil {
				return nil, err
			}
			parts.transactions = append(parts.transactions, txn)
		}
		stmtrs.Remove(tranlist)
	}

	// LEDGERBAL is mandatory.
	ledgerbal := stmtrs.Child("LEDGERBAL")
	if ledgerbal == nil {
		return nil, &SchemaError{Tag: stmtrs.Tag, Msg: "missing LEDGERBAL"}
	}
	ledger, err := balance(f, ledgerbal)
	if err != nil {
		return nil, err
	}
	parts.ledger = *ledger
	stmtrs.Remove(ledgerbal)

	if availbal := stmtrs.Child("AVAILBAL"); availbal != nil {
		if parts.available, err = balance(f, availbal); err != nil {
			return nil, err
		}
		stmtrs.Remove(availbal)
	}

	if ballist := stmtrs.Child("BALLIST"); ballist != nil {
		if parts.other, err = f.balList(ballist); err != nil {
			return nil, err
		}
		stmtrs.Remove(ballist)
	}

	// MKTGINFO is not supported; drop it unread.
	if mktginfo := stmtrs.Child("MKTGINFO"); mktginfo != nil {
		stmtrs.Remove(mktginfo)
	}

	dregs, err := f.flatten(stmtrs, true)
	if err != nil {
		return nil, err
	}
	curdef, ok := dregs["curdef"].(string)
	if !ok {
		return nil, badAttr(stmtrs.Tag, "curdef", dregs["curdef"])
	}
	delete(dregs, "curdef")
	parts.curdef = curdef
	parts.acctAttrs = dregs
	return parts, nil
}

func balance(f *flattener, el *Element) (*model.Balance, error) {
	attrs, err := f.flatten(el, true)
	if err != nil {
		return nil, err
	}
	asof, ok := attrs["dtasof"].(time.Time)
	if !ok {
		return nil, badAttr(el.Tag, "dtasof", attrs["dtasof"])
	}
	amount, ok := attrs["balamt"].(decimal.Decimal)
	if !ok {
		return nil, badAttr(el.Tag, "balamt", attrs["balamt"])
	}
	return &model.Balance{DtAsOf: asof, Amount: amount}, nil
}

// balList converts a BALLIST into a name → balance map, popping each BAL's
// name to key it.
func (f *flattener) balList(list *Element) (map[string]*model.OtherBalance, error) {
	out := make(map[string]*model.OtherBalance, len(list.Children))
	for _, bal := range list.Children {
		attrs, err := f.flatten(bal, true)
		if err != nil {
			return nil, err
		}
		name, ok := attrs["name"].(string)
		if !ok {
			return nil, badAttr(bal.Tag, "name", attrs["name"])
		}
		delete(attrs, "name")
		record, err := newOtherBalance(attrs)
		if err != nil {
			return nil, err
		}
		out[name] = record
	}
	return out, nil
}

func buildBankStatement(schema Schema, stmtrs *Element) (*model.BankStatement, error) {
	parts, err := extractBankParts(newFlattener(schema), stmtrs)
	if err != nil {
		return nil, err
	}
	account, err := newBankAccount(parts.acctAttrs)
	if err != nil {
		return nil, err
	}
	return &model.BankStatement{
		Account:          account,
		CurDef:           parts.curdef,
		Transactions:     parts.transactions,
		Start:            parts.start,
		End:              parts.end,
		LedgerBalance:    parts.ledger,
		AvailableBalance: parts.available,
		OtherBalances:    parts.other,
	}, nil
}

func buildCreditCardStatement(schema Schema, ccstmtrs *Element) (*model.CreditCardStatement, error) {
	parts, err := extractBankParts(newFlattener(schema), ccstmtrs)
	if err != nil {
		return nil, err
	}
	account, err := newCCAccount(parts.acctAttrs)
	if err != nil {
		return nil, err
	}
	return &model.CreditCardStatement{
		Account:          account,
		CurDef:           parts.curdef,
		Transactions:     parts.transactions,
		Start:            parts.start,
		End:              parts.end,
		LedgerBalance:    parts.ledger,
		AvailableBalance: parts.available,
		OtherBalances:    parts.other,
	}, nil
}
