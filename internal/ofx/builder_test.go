package ofx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLenientUnclosedLeaves(t *testing.T) {
	body := "<OFX>\n<STATUS>\n<CODE>0\n<SEVERITY>INFO\n</STATUS>\n</OFX>\n"

	root, err := buildLenient(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "OFX", root.Tag)
	status := root.Child("STATUS")
	require.NotNil(t, status)
	require.Len(t, status.Children, 2)
	assert.Equal(t, "0", status.Child("CODE").Text)
	assert.Equal(t, "INFO", status.Child("SEVERITY").Text)
}

func TestBuildLenientExplicitCloses(t *testing.T) {
	// A v1 writer that closes its leaves anyway must parse identically.
	body := "<OFX><STATUS><CODE>0</CODE><SEVERITY>INFO</SEVERITY></STATUS></OFX>"

	root, err := buildLenient(strings.NewReader(body))
	require.NoError(t, err)

	status := root.Child("STATUS")
	require.NotNil(t, status)
	assert.Equal(t, "0", status.Child("CODE").Text)
	assert.Equal(t, "INFO", status.Child("SEVERITY").Text)
}

func TestBuildLenientUppercasesTags(t *testing.T) {
	body := "<ofx>\n<status>\n<code>0\n</status>\n</ofx>\n"

	root, err := buildLenient(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "OFX", root.Tag)
	require.NotNil(t, root.Child("STATUS"))
	assert.Equal(t, "0", root.Child("STATUS").Child("CODE").Text)
}

func TestBuildLenientPreservesSpaces(t *testing.T) {
	body := "<OFX>\n<MEMO>\t  Gas station no. 12 \r\n<NAME>COFFEE  SHOP\n</OFX>\n"

	root, err := buildLenient(strings.NewReader(body))
	require.NoError(t, err)

	// \f \n \r \t \v are stripped from the ends; regular spaces survive.
	assert.Equal(t, "  Gas station no. 12 ", root.Child("MEMO").Text)
	assert.Equal(t, "COFFEE  SHOP", root.Child("NAME").Text)
}

func TestBuildStrictWellFormed(t *testing.T) {
	body := "<OFX><STATUS><CODE>0</CODE></STATUS></OFX>"

	root, err := buildStrict(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "0", root.Child("STATUS").Child("CODE").Text)
}

func TestBuildStrictRejectsUnclosedLeaves(t *testing.T) {
	body := "<OFX><STATUS><CODE>0</STATUS></OFX>"

	_, err := buildStrict(strings.NewReader(body))
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestBuildStrictRejectsEmptyBody(t *testing.T) {
	_, err := buildStrict(strings.NewReader("\n"))
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestBuildLenientRejectsDanglingAggregates(t *testing.T) {
	_, err := buildLenient(strings.NewReader("<OFX><STMTRS><CURDEF>USD\n"))
	assert.ErrorIs(t, err, ErrSyntax)
}

// Tag case is normalized on entry, so every tag reachable in the tree is
// uppercase no matter how it was written.
func TestTreeTagsAlwaysUppercase(t *testing.T) {
	body := "<Ofx><stmTrs><CurDef>USD</CurDef></stmTrs></Ofx>"

	for name, build := range map[string]func() (*Element, error){
		"strict":  func() (*Element, error) { return buildStrict(strings.NewReader(body)) },
		"lenient": func() (*Element, error) { return buildLenient(strings.NewReader(body)) },
	} {
		t.Run(name, func(t *testing.T) {
			root, err := build()
			require.NoError(t, err)
			var walk func(el *Element)
			walk = func(el *Element) {
				assert.Equal(t, strings.ToUpper(el.Tag), el.Tag)
				for _, c := range el.Children {
					walk(c)
				}
			}
			walk(root)
			require.NotNil(t, root.Find("STMTRS"))
			assert.Equal(t, "USD", root.Find("CURDEF").Text)
		})
	}
}
