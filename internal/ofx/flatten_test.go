package ofx

import (
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/paper-trail/internal/ofx/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(tag, text string) *Element {
	return &Element{Tag: tag, Text: text}
}

func TestFlattenLeavesAndAggregates(t *testing.T) {
	stmtrs := &Element{Tag: "STMTRS", Children: []*Element{
		leaf("CURDEF", "USD"),
		{Tag: "BANKACCTFROM", Children: []*Element{
			leaf("BANKID", "123456789"),
			leaf("ACCTID", "000111"),
			leaf("ACCTTYPE", "CHECKING"),
		}},
	}}

	f := newFlattener(schema.Default())
	attrs, err := f.flatten(stmtrs, true)
	require.NoError(t, err)

	assert.Equal(t, "USD", attrs["curdef"])
	assert.Equal(t, "123456789", attrs["bankid"])
	assert.Equal(t, "CHECKING", attrs["accttype"])
}

func TestFlattenNoRecurseSkipsAggregates(t *testing.T) {
	tranlist := &Element{Tag: "BANKTRANLIST", Children: []*Element{
		leaf("DTSTART", "20230101"),
		leaf("DTEND", "20230131"),
		{Tag: "STMTTRN", Children: []*Element{
			leaf("TRNTYPE", "DEBIT"),
			leaf("DTPOSTED", "20230110"),
			leaf("TRNAMT", "-25.50"),
			leaf("FITID", "1"),
		}},
	}}

	f := newFlattener(schema.Default())
	attrs, err := f.flatten(tranlist, false)
	require.NoError(t, err)

	assert.Len(t, attrs, 2)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), attrs["dtstart"])
	assert.Equal(t, time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), attrs["dtend"])
}

func TestFlattenDuplicateLeafIsFatal(t *testing.T) {
	ledgerbal := &Element{Tag: "LEDGERBAL", Children: []*Element{
		leaf("BALAMT", "100.00"),
		leaf("DTASOF", "20230131"),
		leaf("DTASOF", "20230201"),
	}}

	f := newFlattener(schema.Default())
	_, err := f.flatten(ledgerbal, true)

	var serr *SchemaError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "DTASOF", serr.Tag)
}

func TestFlattenLeafTextIsSpaceTrimmed(t *testing.T) {
	// The tree builder strips \f\n\r\t\v only; the flattener trims the
	// remaining edge spaces when it stores the leaf.
	el := &Element{Tag: "CCACCTFROM", Children: []*Element{
		leaf("ACCTID", "  4111111111111111  "),
	}}

	f := newFlattener(schema.Default())
	attrs, err := f.flatten(el, true)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", attrs["acctid"])
}

func TestListItemInjectsKind(t *testing.T) {
	item := &Element{Tag: "STMTTRN", Children: []*Element{
		leaf("TRNTYPE", "CHECK"),
		leaf("DTPOSTED", "20230110"),
		leaf("TRNAMT", "-500.00"),
		leaf("FITID", "42"),
		leaf("CHECKNUM", "1234"),
	}}

	f := newFlattener(schema.Default())
	attrs, err := f.listItem(item, KindBankTransaction, nil)
	require.NoError(t, err)

	assert.Equal(t, "STMTTRN", attrs["type"])
	assert.Equal(t, "1234", attrs["checknum"])
}

func TestListItemRejectsWrongDomain(t *testing.T) {
	item := &Element{Tag: "STMTTRN", Children: []*Element{
		leaf("TRNTYPE", "DEBIT"),
		leaf("DTPOSTED", "20230110"),
		leaf("TRNAMT", "-1.00"),
		leaf("FITID", "1"),
	}}

	f := newFlattener(schema.Default())
	_, err := f.listItem(item, KindInvTransaction, nil)

	var serr *SchemaError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "STMTTRN", serr.Tag)
}

func TestListItemExtrasCollide(t *testing.T) {
	item := &Element{Tag: "STOCKINFO", Children: []*Element{
		{Tag: "SECINFO", Children: []*Element{
			leaf("SECNAME", "Acme Corp"),
		}},
	}}

	f := newFlattener(schema.Default())
	_, err := f.listItem(item, KindSecurity, map[string]any{"secname": "collides"})

	var serr *SchemaError
	require.True(t, errors.As(err, &serr))
}
