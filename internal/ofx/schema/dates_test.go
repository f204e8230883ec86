package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date only",
			input: "20230131",
			want:  time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "date and time",
			input: "20230131143000",
			want:  time.Date(2023, 1, 31, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "fractional seconds",
			input: "20230131143000.250",
			want:  time.Date(2023, 1, 31, 14, 30, 0, 250_000_000, time.UTC),
		},
		{
			name:  "gmt suffix",
			input: "20230131143000[0:GMT]",
			want:  time.Date(2023, 1, 31, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "negative offset",
			input: "20230131143000[-5:EST]",
			want:  time.Date(2023, 1, 31, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)),
		},
		{
			name:  "fractional offset",
			input: "20230131143000[9.5:ACST]",
			want:  time.Date(2023, 1, 31, 14, 30, 0, 0, time.FixedZone("ACST", 34200)),
		},
		{
			name:    "garbage",
			input:   "January 31 2023",
			wantErr: true,
		},
		{
			name:    "unterminated zone",
			input:   "20230131[0:GMT",
			wantErr: true,
		},
		{
			name:    "bad offset",
			input:   "20230131[EST]",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}
