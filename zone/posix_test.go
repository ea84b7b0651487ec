package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePOSIXFixedOffset(t *testing.T) {
	r, err := parsePOSIX("MST7")
	require.NoError(t, err)
	assert.Equal(t, "MST", r.stdName)
	assert.Equal(t, -7*3600, r.stdOffset)
	assert.False(t, r.hasDST)
}

func TestParsePOSIXWithDST(t *testing.T) {
	r, err := parsePOSIX("PST8PDT,M3.2.0,M11.1.0")
	require.NoError(t, err)
	assert.Equal(t, "PST", r.stdName)
	assert.Equal(t, -8*3600, r.stdOffset)
	assert.Equal(t, "PDT", r.dstName)
	assert.Equal(t, -7*3600, r.dstOffset)
	assert.Equal(t, byte('M'), r.start.kind)
	assert.Equal(t, 3, r.start.month)
	assert.Equal(t, 2, r.start.week)
	assert.Equal(t, 0, r.start.weekday)
}

func TestOrdinalOfMonthWeekdaySecondSundayInMarch(t *testing.T) {
	// 2024-03-10 is the second Sunday in March 2024.
	got := ordinalOfMonthWeekday(2024, 3, 2, 0)
	want := int(daysSinceEpoch(2024, 2, 9) - daysSinceEpoch(2024, 0, 0))
	assert.Equal(t, want, got)
}

func TestOrdinalOfMonthWeekdayLastSundayInOctober(t *testing.T) {
	// 2024-10-27 is the last Sunday in October 2024.
	got := ordinalOfMonthWeekday(2024, 10, 5, 0)
	want := int(daysSinceEpoch(2024, 9, 26) - daysSinceEpoch(2024, 0, 0))
	assert.Equal(t, want, got)
}
