package schema

// Shared enum value sets.
var (
	subAcctValues    = []string{"CASH", "MARGIN", "SHORT", "OTHER"}
	assetClassValues = []string{"DOMESTICBOND", "INTLBOND", "LARGESTOCK", "SMALLSTOCK", "INTLSTOCK", "MONEYMRKT", "OTHER"}
	posTypeValues    = []string{"LONG", "SHORT"}
	securedValues    = []string{"NAKED", "COVERED"}
)

// aggregates is the fixed validation dictionary: for every aggregate tag the
// flattener may hand us, the accepted leaves and their coercions.
var aggregates = map[string]aggregate{
	"STMTRS":   {"curdef": reqStr},
	"CCSTMTRS": {"curdef": reqStr},
	"INVSTMTRS": {
		"curdef": reqStr,
		"dtasof": reqDate,
	},

	"BANKACCTFROM": {
		"bankid":   reqStr,
		"branchid": str,
		"acctid":   reqStr,
		"accttype": reqEnum("CHECKING", "SAVINGS", "MONEYMRKT", "CREDITLINE"),
		"acctkey":  str,
	},
	"CCACCTFROM": {
		"acctid":  reqStr,
		"acctkey": str,
	},
	"INVACCTFROM": {
		"brokerid": reqStr,
		"acctid":   reqStr,
	},

	"BANKTRANLIST": {"dtstart": reqDate, "dtend": reqDate},
	"INVTRANLIST":  {"dtstart": reqDate, "dtend": reqDate},

	"STMTTRN": {
		"trntype": reqEnum("CREDIT", "DEBIT", "INT", "DIV", "FEE", "SRVCHG",
			"DEP", "ATM", "POS", "XFER", "CHECK", "PAYMENT", "CASH",
			"DIRECTDEP", "DIRECTDEBIT", "REPEATPMT", "OTHER"),
		"dtposted":      reqDate,
		"dtuser":        date,
		"dtavail":       date,
		"trnamt":        reqAmt,
		"fitid":         reqStr,
		"correctfitid":  str,
		"correctaction": enum("REPLACE", "DELETE"),
		"srvrtid":       str,
		"checknum":      str,
		"refnum":        str,
		"sic":           num,
		"payeeid":       str,
		"name":          str,
		"memo":          str,
	},

	"CURRENCY":     {"currate": reqAmt, "cursym": reqStr},
	"ORIGCURRENCY": {"currate": reqAmt, "cursym": reqStr},

	"LEDGERBAL": {"balamt": reqAmt, "dtasof": reqDate},
	"AVAILBAL":  {"balamt": reqAmt, "dtasof": reqDate},
	"BAL": {
		"name":    reqStr,
		"desc":    str,
		"baltype": enum("DOLLAR", "PERCENT", "NUMBER"),
		"value":   reqAmt,
		"dtasof":  date,
	},
	"INVBAL": {
		"availcash":     reqAmt,
		"marginbalance": reqAmt,
		"shortbalance":  reqAmt,
		"buypower":      amt,
	},

	"SECID": {"uniqueid": reqStr, "uniqueidtype": reqStr},
	"SECINFO": {
		"secname":   reqStr,
		"ticker":    str,
		"fiid":      str,
		"rating":    str,
		"unitprice": amt,
		"dtasof":    date,
		"memo":      str,
	},
	"STOCKINFO": {
		"stocktype":    enum("COMMON", "PREFERRED", "CONVERTIBLE", "OTHER"),
		"yield":        amt,
		"dtyieldasof":  date,
		"assetclass":   enum(assetClassValues...),
		"fiassetclass": str,
	},
	"MFINFO": {
		"mftype":      enum("OPENEND", "CLOSEEND", "OTHER"),
		"yield":       amt,
		"dtyieldasof": date,
	},
	"DEBTINFO": {
		"parvalue":     reqAmt,
		"debttype":     reqEnum("COUPON", "ZERO"),
		"debtclass":    enum("TREASURY", "MUNICIPAL", "CORPORATE", "OTHER"),
		"couponrt":     amt,
		"dtcoupon":     date,
		"couponfreq":   enum("MONTHLY", "QUARTERLY", "SEMIANNUAL", "ANNUAL", "OTHER"),
		"callprice":    amt,
		"yieldtocall":  amt,
		"dtcall":       date,
		"calltype":     enum("CALL", "PUT", "PREFUND", "MATURITY"),
		"yieldtomat":   amt,
		"dtmat":        date,
		"assetclass":   enum(assetClassValues...),
		"fiassetclass": str,
	},
	"OPTINFO": {
		"opttype":      reqEnum("CALL", "PUT"),
		"strikeprice":  reqAmt,
		"dtexpire":     reqDate,
		"shperctrct":   reqNum,
		"assetclass":   enum(assetClassValues...),
		"fiassetclass": str,
	},
	"OTHERINFO": {
		"typedesc":     str,
		"assetclass":   enum(assetClassValues...),
		"fiassetclass": str,
	},

	"INVTRAN": {
		"fitid":         reqStr,
		"srvrtid":       str,
		"dttrade":       reqDate,
		"dtsettle":      date,
		"reversalfitid": str,
		"memo":          str,
	},
	"INVBUY": {
		"units":            reqAmt,
		"unitprice":        reqAmt,
		"markup":           amt,
		"commission":       amt,
		"taxes":            amt,
		"fees":             amt,
		"load":             amt,
		"total":            reqAmt,
		"subacctsec":       reqEnum(subAcctValues...),
		"subacctfund":      reqEnum(subAcctValues...),
		"loanid":           str,
		"loanprincipal":    amt,
		"loaninterest":     amt,
		"inv401ksource":    str,
		"dtpayroll":        date,
		"prioryearcontrib": yesNo,
	},
	"INVSELL": {
		"units":            reqAmt,
		"unitprice":        reqAmt,
		"markdown":         amt,
		"commission":       amt,
		"taxes":            amt,
		"fees":             amt,
		"load":             amt,
		"withholding":      amt,
		"taxexempt":        yesNo,
		"total":            reqAmt,
		"gain":             amt,
		"subacctsec":       reqEnum(subAcctValues...),
		"subacctfund":      reqEnum(subAcctValues...),
		"loanid":           str,
		"statewithholding": amt,
		"penalty":          amt,
		"inv401ksource":    str,
	},

	"BUYDEBT":  {"accrdint": amt},
	"BUYMF":    {"buytype": reqEnum("BUY", "BUYTOCOVER"), "relfitid": str},
	"BUYOPT":   {"optbuytype": reqEnum("BUYTOOPEN", "BUYTOCLOSE"), "shperctrct": reqNum},
	"BUYOTHER": {},
	"BUYSTOCK": {"buytype": reqEnum("BUY", "BUYTOCOVER")},
	"CLOSUREOPT": {
		"optaction":  reqEnum("EXERCISE", "ASSIGN", "EXPIRE"),
		"units":      reqAmt,
		"shperctrct": reqNum,
		"subacctsec": reqEnum(subAcctValues...),
		"relfitid":   str,
		"gain":       amt,
	},
	"INCOME": {
		"incometype":    reqEnum("CGLONG", "CGSHORT", "DIV", "INTEREST", "MISC"),
		"total":         reqAmt,
		"subacctsec":    reqEnum(subAcctValues...),
		"subacctfund":   reqEnum(subAcctValues...),
		"taxexempt":     yesNo,
		"withholding":   amt,
		"inv401ksource": str,
	},
	"INVEXPENSE": {
		"total":         reqAmt,
		"subacctsec":    reqEnum(subAcctValues...),
		"subacctfund":   reqEnum(subAcctValues...),
		"inv401ksource": str,
	},
	"JRNLFUND": {
		"subacctto":   reqEnum(subAcctValues...),
		"subacctfrom": reqEnum(subAcctValues...),
		"total":       reqAmt,
	},
	"JRNLSEC": {
		"subacctto":   reqEnum(subAcctValues...),
		"subacctfrom": reqEnum(subAcctValues...),
		"units":       reqAmt,
	},
	"MARGININTEREST": {
		"total":       reqAmt,
		"subacctfund": reqEnum(subAcctValues...),
	},
	"REINVEST": {
		"incometype":    reqEnum("CGLONG", "CGSHORT", "DIV", "INTEREST", "MISC"),
		"total":         reqAmt,
		"subacctsec":    reqEnum(subAcctValues...),
		"units":         reqAmt,
		"unitprice":     reqAmt,
		"commission":    amt,
		"taxes":         amt,
		"fees":          amt,
		"load":          amt,
		"taxexempt":     yesNo,
		"inv401ksource": str,
	},
	"RETOFCAP": {
		"total":         reqAmt,
		"subacctsec":    reqEnum(subAcctValues...),
		"subacctfund":   reqEnum(subAcctValues...),
		"inv401ksource": str,
	},
	"SELLDEBT": {
		"sellreason": reqEnum("CALL", "SELL", "MATURITY"),
		"accrdint":   amt,
	},
	"SELLMF": {
		"selltype":     reqEnum("SELL", "SELLSHORT"),
		"avgcostbasis": amt,
		"relfitid":     str,
	},
	"SELLOPT": {
		"optselltype": reqEnum("SELLTOCLOSE", "SELLTOOPEN"),
		"shperctrct":  reqNum,
		"relfitid":    str,
		"reltype":     enum("SPREAD", "STRADDLE", "NONE", "OTHER"),
		"secured":     enum(securedValues...),
	},
	"SELLOTHER": {},
	"SELLSTOCK": {"selltype": reqEnum("SELL", "SELLSHORT")},
	"SPLIT": {
		"subacctsec":    reqEnum(subAcctValues...),
		"subacctfund":   enum(subAcctValues...),
		"oldunits":      reqAmt,
		"newunits":      reqAmt,
		"numerator":     reqAmt,
		"denominator":   reqAmt,
		"fraccash":      amt,
		"inv401ksource": str,
	},
	"TRANSFER": {
		"subacctsec":    reqEnum(subAcctValues...),
		"units":         reqAmt,
		"tferaction":    reqEnum("IN", "OUT"),
		"postype":       reqEnum(posTypeValues...),
		"avgcostbasis":  amt,
		"unitprice":     amt,
		"dtpurchase":    date,
		"inv401ksource": str,
	},

	"INVPOS": {
		"heldinacct":    reqEnum(subAcctValues...),
		"postype":       reqEnum(posTypeValues...),
		"units":         reqAmt,
		"unitprice":     reqAmt,
		"mktval":        reqAmt,
		"dtpriceasof":   reqDate,
		"memo":          str,
		"inv401ksource": str,
	},
	"POSDEBT": {},
	"POSMF": {
		"unitsstreet": amt,
		"unitsuser":   amt,
		"reinvdiv":    yesNo,
		"reinvcg":     yesNo,
	},
	"POSOPT":   {"secured": enum(securedValues...)},
	"POSOTHER": {},
	"POSSTOCK": {
		"unitsstreet": amt,
		"unitsuser":   amt,
		"reinvdiv":    yesNo,
		"reinvcg":     yesNo,
	},
}

// kinds are the list-item tags accepted per transaction-kind domain.
var kinds = map[string][]string{
	"banktranlist": {"STMTTRN"},
	"invtranlist": {
		"BUYDEBT", "BUYMF", "BUYOPT", "BUYOTHER", "BUYSTOCK", "CLOSUREOPT",
		"INCOME", "INVEXPENSE", "JRNLFUND", "JRNLSEC", "MARGININTEREST",
		"REINVEST", "RETOFCAP", "SELLDEBT", "SELLMF", "SELLOPT", "SELLOTHER",
		"SELLSTOCK", "SPLIT", "TRANSFER",
	},
	"seclist":    {"DEBTINFO", "MFINFO", "OPTINFO", "OTHERINFO", "STOCKINFO"},
	"invposlist": {"POSDEBT", "POSMF", "POSOPT", "POSOTHER", "POSSTOCK"},
}
