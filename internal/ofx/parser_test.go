package ofx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/paper-trail/internal/model"
	"github.com/Veraticus/paper-trail/internal/ofx/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal v1 bank statement with every leaf explicitly closed, so the strict
// back-end accepts it directly.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:NONE
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0</CODE>
<SEVERITY>INFO</SEVERITY>
</STATUS>
<DTSERVER>20230201120000</DTSERVER>
<LANGUAGE>ENG</LANGUAGE>
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1</TRNUID>
<STATUS>
<CODE>0</CODE>
<SEVERITY>INFO</SEVERITY>
</STATUS>
<STMTRS>
<CURDEF>USD</CURDEF>
<BANKACCTFROM>
<BANKID>123456789</BANKID>
<ACCTID>000111</ACCTID>
<ACCTTYPE>CHECKING</ACCTTYPE>
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20230101</DTSTART>
<DTEND>20230131</DTEND>
<STMTTRN>
<TRNTYPE>DEBIT</TRNTYPE>
<DTPOSTED>20230110</DTPOSTED>
<TRNAMT>-25.50</TRNAMT>
<FITID>20230110001</FITID>
<NAME>Gas station</NAME>
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT</TRNTYPE>
<DTPOSTED>20230115</DTPOSTED>
<TRNAMT>1500.00</TRNAMT>
<FITID>20230115001</FITID>
<NAME>ACME PAYROLL</NAME>
<MEMO>Direct deposit</MEMO>
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>100.00</BALAMT>
<DTASOF>20230131</DTASOF>
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

// The same statement as a bank in the wild writes it: no leaf close tags at
// all. Only the lenient back-end can make sense of this.
const sampleBankOFXUnclosed = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:NONE
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20230201120000
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>000111
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20230101
<DTEND>20230131
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20230110
<TRNAMT>-25.50
<FITID>20230110001
<NAME>Gas station
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20230115
<TRNAMT>1500.00
<FITID>20230115001
<NAME>ACME PAYROLL
<MEMO>Direct deposit
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>100.00
<DTASOF>20230131
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

const sampleCreditCardOFX = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<?OFX OFXHEADER="200" VERSION="203" SECURITY="NONE" OLDFILEUID="NONE" NEWFILEUID="NONE"?>
<OFX>
<SIGNONMSGSRSV1><SONRS><STATUS><CODE>0</CODE><SEVERITY>INFO</SEVERITY></STATUS><DTSERVER>20230201</DTSERVER><LANGUAGE>ENG</LANGUAGE></SONRS></SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1</TRNUID>
<STATUS><CODE>0</CODE><SEVERITY>INFO</SEVERITY></STATUS>
<CCSTMTRS>
<CURDEF>USD</CURDEF>
<CCACCTFROM><ACCTID>4111111111111111</ACCTID></CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20230101</DTSTART>
<DTEND>20230131</DTEND>
<STMTTRN>
<TRNTYPE>DEBIT</TRNTYPE>
<DTPOSTED>20230105</DTPOSTED>
<TRNAMT>-42.00</TRNAMT>
<FITID>900001</FITID>
<NAME>COFFEE SHOP</NAME>
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL><BALAMT>-42.00</BALAMT><DTASOF>20230131</DTASOF></LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>
`

func newTestParser(opts ...Option) *Parser {
	return NewParser(schema.Default(), opts...)
}

func requireBankExpectations(t *testing.T, st *model.BankStatement) {
	t.Helper()
	require.NotNil(t, st)

	assert.Equal(t, "123456789", st.Account.BankID)
	assert.Equal(t, "000111", st.Account.AcctID)
	assert.Equal(t, "CHECKING", st.Account.AcctType)
	assert.Equal(t, "USD", st.CurDef)

	require.Len(t, st.Transactions, 2)
	first, second := st.Transactions[0], st.Transactions[1]
	assert.Equal(t, "20230110001", first.FiTID)
	assert.Equal(t, "DEBIT", first.TrnType)
	assert.Equal(t, "Gas station", first.Name)
	assert.True(t, decimal.RequireFromString("-25.50").Equal(first.TrnAmt))
	assert.Equal(t, "20230115001", second.FiTID)
	assert.Equal(t, "Direct deposit", second.Memo)

	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), st.Start)
	assert.Equal(t, time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), st.End)
	assert.Equal(t, time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), st.LedgerBalance.DtAsOf)
	assert.True(t, decimal.RequireFromString("100.00").Equal(st.LedgerBalance.Amount))
	assert.Nil(t, st.AvailableBalance)
}

func TestParseBankStatementV1(t *testing.T) {
	p := newTestParser()
	require.NoError(t, p.Parse(context.Background(), strings.NewReader(sampleBankOFX)))

	assert.Equal(t, "102", p.Header["VERSION"])
	requireBankExpectations(t, p.Bank)
	assert.Nil(t, p.CreditCard)
	assert.Nil(t, p.Investment)
}

func TestParseBankStatementUnclosedLeaves(t *testing.T) {
	// The strict back-end must reject the body outright...
	headerLen := strings.Index(sampleBankOFXUnclosed, "<OFX>")
	_, err := buildStrict(strings.NewReader(sampleBankOFXUnclosed[headerLen:]))
	require.ErrorIs(t, err, ErrSyntax)

	// ...and the facade's lenient fallback must produce the same statement
	// as the fully closed rendition.
	closed := newTestParser()
	require.NoError(t, closed.Parse(context.Background(), strings.NewReader(sampleBankOFX)))

	unclosed := newTestParser()
	require.NoError(t, unclosed.Parse(context.Background(), strings.NewReader(sampleBankOFXUnclosed)))

	requireBankExpectations(t, unclosed.Bank)
	assert.Equal(t, closed.Bank, unclosed.Bank)
}

func TestParseCreditCardStatementV2(t *testing.T) {
	p := newTestParser()
	require.NoError(t, p.Parse(context.Background(), strings.NewReader(sampleCreditCardOFX)))

	require.NotNil(t, p.CreditCard)
	assert.Nil(t, p.Bank)
	assert.Equal(t, "4111111111111111", p.CreditCard.Account.AcctID)
	require.Len(t, p.CreditCard.Transactions, 1)
	assert.Equal(t, "COFFEE SHOP", p.CreditCard.Transactions[0].Name)
	assert.Nil(t, p.CreditCard.AvailableBalance)
}

// A body that is well-formed under strict parsing must yield the same typed
// statement when forced through the lenient back-end: the lenient path is a
// superset.
func TestStrictAndLenientAgree(t *testing.T) {
	strict := newTestParser()
	require.NoError(t, strict.Parse(context.Background(), strings.NewReader(sampleCreditCardOFX)))

	lenient := newTestParser(WithLenient(true))
	require.NoError(t, lenient.Parse(context.Background(), strings.NewReader(sampleCreditCardOFX)))

	assert.Equal(t, strict.CreditCard, lenient.CreditCard)
}

func TestParseDuplicateChildIsSchemaError(t *testing.T) {
	doc := strings.Replace(sampleBankOFX,
		"<DTASOF>20230131</DTASOF>",
		"<DTASOF>20230131</DTASOF>\n<DTASOF>20230201</DTASOF>", 1)

	p := newTestParser()
	err := p.Parse(context.Background(), strings.NewReader(doc))

	var serr *SchemaError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "DTASOF", serr.Tag)
	assert.Nil(t, p.Bank)
}

func TestParseWindows1252Body(t *testing.T) {
	doc := strings.Replace(sampleBankOFX, "CHARSET:NONE", "CHARSET:1252", 1)
	doc = strings.Replace(doc, "Gas station", "CAF\xc9 N\xdf 12", 1)

	p := newTestParser()
	require.NoError(t, p.Parse(context.Background(), strings.NewReader(doc)))
	assert.Equal(t, "CAFÉ Nß 12", p.Bank.Transactions[0].Name)
}

func TestParserReset(t *testing.T) {
	p := newTestParser()
	require.NoError(t, p.Parse(context.Background(), strings.NewReader(sampleBankOFX)))
	require.NotNil(t, p.Bank)

	require.NoError(t, p.Parse(context.Background(), strings.NewReader(sampleCreditCardOFX)))
	assert.Nil(t, p.Bank)
	assert.NotNil(t, p.CreditCard)

	p.Reset()
	assert.Nil(t, p.Header)
	assert.Nil(t, p.CreditCard)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.qfx")
	require.NoError(t, os.WriteFile(path, []byte(sampleBankOFX), 0o600))

	p := newTestParser()
	require.NoError(t, p.ParseFile(context.Background(), path))
	requireBankExpectations(t, p.Bank)
}

func TestParseFileMissing(t *testing.T) {
	p := newTestParser()
	assert.Error(t, p.ParseFile(context.Background(), filepath.Join(t.TempDir(), "nope.ofx")))
}

func TestParseCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestParser()
	err := p.Parse(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}
