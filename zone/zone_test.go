package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-rhythm/rhythm/internal/tzif"
)

func mst() *Zone {
	rule, _ := parsePOSIX("MST7")
	return &Zone{Name: "MST", rule: rule}
}

func losAngeles() *Zone {
	// A minimal stand-in for America/Los_Angeles spanning the 2024
	// spring-forward transition, used to test Localize/Transitions
	// without reading a real system zoneinfo file.
	pdt := tzif.LocalTimeType{UTOffsetSeconds: -7 * 3600, IsDST: true, Designation: "PDT"}
	springForward := daysSinceEpoch(2024, 2, 9)*86400 + 2*3600 + 8*3600 // 2024-03-10 02:00 PST
	return &Zone{
		Name: "America/Los_Angeles",
		transitions: []tzif.Transition{
			{At: springForward, Type: pdt},
		},
		rule: posixRule{stdName: "PST", stdOffset: -8 * 3600, dstName: "PDT", dstOffset: -7 * 3600, hasDST: true,
			start: transitionRule{kind: 'M', month: 3, week: 2, weekday: 0, atSecond: 2 * 3600},
			end:   transitionRule{kind: 'M', month: 11, week: 1, weekday: 0, atSecond: 2 * 3600}},
	}
}

func TestZoneLocalizeBeforeAndAfterTransition(t *testing.T) {
	z := losAngeles()
	before := z.Localize(z.transitions[0].At - 1)
	assert.Equal(t, -8*3600, before.Seconds)
	assert.False(t, before.IsDST)

	after := z.Localize(z.transitions[0].At)
	assert.Equal(t, -7*3600, after.Seconds)
	assert.True(t, after.IsDST)
}

func TestZoneTransitionsWindow(t *testing.T) {
	z := losAngeles()
	at := z.transitions[0].At
	got := z.Transitions(at-86400, at+86400)
	require.Len(t, got, 1)
	assert.Equal(t, at, got[0].At)
}

func TestZoneTransitionsEmptyWindowOutsideRange(t *testing.T) {
	z := losAngeles()
	at := z.transitions[0].At
	got := z.Transitions(at+86400, at+2*86400)
	assert.Empty(t, got)
}

func TestMSTHasNoTransitions(t *testing.T) {
	z := mst()
	assert.Empty(t, z.Slice(0, 1<<40))
	off := z.Localize(0)
	assert.Equal(t, -7*3600, off.Seconds)
	assert.False(t, off.IsDST)
}

func TestYearOfIsExactFarFromEpoch(t *testing.T) {
	jan1_2100 := daysSinceEpoch(2100, 0, 0) * 86400
	assert.Equal(t, 2100, yearOf(jan1_2100))
	assert.Equal(t, 2099, yearOf(jan1_2100-1))
}

func TestZoneNormalizeResolvesUnambiguousTime(t *testing.T) {
	z := mst()
	localNoon := int64(12 * 3600)
	unix, off, err := z.Normalize(localNoon)
	require.NoError(t, err)
	assert.Equal(t, -7*3600, off.Seconds)
	assert.Equal(t, localNoon-int64(off.Seconds), unix)
}
