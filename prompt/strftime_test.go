package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrftimeToLayout(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
		wantErr bool
	}{
		{
			name:    "iso date",
			pattern: "%Y-%m-%d",
			want:    "2006-01-02",
		},
		{
			name:    "time of day",
			pattern: "%H:%M:%S",
			want:    "15:04:05",
		},
		{
			name:    "twelve hour clock",
			pattern: "%I %p",
			want:    "03 PM",
		},
		{
			name:    "weekday and month names",
			pattern: "%A %d %B",
			want:    "Monday 02 January",
		},
		{
			name:    "abbreviated names",
			pattern: "%a %b %y",
			want:    "Mon Jan 06",
		},
		{
			name:    "zone",
			pattern: "%Z%z",
			want:    "MST-0700",
		},
		{
			name:    "escaped percent",
			pattern: "100%%",
			want:    "100%",
		},
		{
			name:    "day of year",
			pattern: "%j",
			want:    "002",
		},
		{
			name:    "literal separators pass through",
			pattern: "%Y/%m",
			want:    "2006/01",
		},
		{
			name:    "unsupported directive",
			pattern: "%Q",
			wantErr: true,
		},
		{
			name:    "trailing percent",
			pattern: "%Y%",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := strftimeToLayout(tt.pattern)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
