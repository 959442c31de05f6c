package timezone_test

import (
	"testing"
	"time"
	"villa/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneInit(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestFormat(t *testing.T) {
	testTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.NotEmpty(t, timezone.Format(testTime, "2006-01-02 15:04:05 MST"))
}

func TestDate(t *testing.T) {
	nairobi := time.FixedZone("EAT", 3*60*60)
	in := time.Date(2026, 2, 10, 23, 30, 0, 0, nairobi)

	got := timezone.Date(in)

	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "calendar date",
			value: "2026-02-10",
			want:  time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			value:   "tomorrow",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate("2006-01-02", tt.value)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate_Timestamp(t *testing.T) {
	got, err := timezone.ParseDate("2006-01-02", "2026-02-10T12:00:00Z")

	require.NoError(t, err)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, time.UTC, got.Location())
}
