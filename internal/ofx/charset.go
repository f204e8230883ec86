package ofx

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// decodeBody transcodes the body to UTF-8 according to the v1 header's
// CHARSET field. Institutions routinely declare USASCII while emitting
// Windows code page 1252, so CHARSET is the field that matters. Unknown or
// absent charsets pass the body through untouched; v2 documents carry no
// CHARSET and are UTF-8 already.
func decodeBody(body []byte, header Header) ([]byte, error) {
	var cm *charmap.Charmap
	switch header["CHARSET"] {
	case "1252":
		cm = charmap.Windows1252
	case "ISO-8859-1":
		cm = charmap.ISO8859_1
	default:
		return body, nil
	}
	decoded, err := cm.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s body: %w", header["CHARSET"], err)
	}
	return decoded, nil
}
