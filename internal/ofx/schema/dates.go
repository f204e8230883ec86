package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses the OFX datetime forms: YYYYMMDD, YYYYMMDDHHMMSS,
// YYYYMMDDHHMMSS.XXX, each optionally followed by a [gg.gg:TZ] zone suffix
// giving the offset from GMT in hours. Times without a suffix are GMT per
// the OFX specification.
func ParseDate(raw string) (time.Time, error) {
	value := raw
	loc := time.UTC

	if i := strings.IndexByte(value, '['); i >= 0 {
		if !strings.HasSuffix(value, "]") {
			return time.Time{}, fmt.Errorf("malformed timezone suffix in %q", raw)
		}
		zone := value[i+1 : len(value)-1]
		value = value[:i]

		name := ""
		if j := strings.IndexByte(zone, ':'); j >= 0 {
			name = zone[j+1:]
			zone = zone[:j]
		}
		hours, err := strconv.ParseFloat(zone, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("malformed timezone offset in %q", raw)
		}
		if name == "" {
			name = fmt.Sprintf("GMT%+g", hours)
		}
		loc = time.FixedZone(name, int(hours*3600))
	}

	var layout string
	switch len(value) {
	case 8:
		layout = "20060102"
	case 12:
		layout = "200601021504"
	case 14:
		layout = "20060102150405"
	case 18:
		layout = "20060102150405.000"
	default:
		return time.Time{}, fmt.Errorf("unrecognized datetime %q", raw)
	}
	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized datetime %q", raw)
	}
	return t, nil
}
