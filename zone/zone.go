// Package zone loads and queries zoneinfo data — the binary TZif
// database under /usr/share/zoneinfo and similar system roots — without
// going through the standard library's time.Location.
package zone

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/go-rhythm/rhythm/internal/tzif"
)

func byteReader(b []byte) io.Reader { return bytes.NewReader(b) }

// defaultRoots are searched, in order, for a zoneinfo database, unless
// ZONEINFO names one explicitly.
var defaultRoots = []string{
	"/usr/share/zoneinfo",
	"/usr/lib/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/etc/zoneinfo",
}

// Offset describes the local time type in effect starting at an instant.
type Offset struct {
	Seconds     int
	Designation string
	IsDST       bool
}

// Zone is a parsed zoneinfo entry: a transition history plus, for
// zones with a v2/v3 footer, the POSIX rule that governs instants
// after the final recorded transition.
type Zone struct {
	Name        string
	transitions []tzif.Transition
	rule        posixRule
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*Zone{}
)

// Load locates and parses the named zone (e.g. "America/Los_Angeles"),
// searching ZONEINFO first if set, then defaultRoots. Results are
// cached for the process lifetime.
func Load(name string) (*Zone, error) {
	cacheMu.Lock()
	if z, ok := cache[name]; ok {
		cacheMu.Unlock()
		return z, nil
	}
	cacheMu.Unlock()

	roots := defaultRoots
	if env := os.Getenv("ZONEINFO"); env != "" {
		roots = append([]string{env}, roots...)
	}

	var lastErr error
	for _, root := range roots {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		z, err := parse(name, data)
		if err != nil {
			return nil, err
		}
		cacheMu.Lock()
		cache[name] = z
		cacheMu.Unlock()
		logrus.WithField("zone", name).Debug("loaded zoneinfo entry")
		return z, nil
	}
	if lastErr != nil {
		return nil, &NotFoundError{Name: name, Cause: lastErr}
	}
	return nil, &NotFoundError{Name: name}
}

func parse(name string, data []byte) (*Zone, error) {
	parsed, err := tzif.Parse(byteReader(data))
	if err != nil {
		return nil, &FormatError{Name: name, Reason: err.Error()}
	}
	rule, err := parsePOSIX(parsed.Footer)
	if err != nil {
		return nil, &FormatError{Name: name, Reason: err.Error()}
	}
	return &Zone{Name: name, transitions: parsed.Transitions, rule: rule}, nil
}

// NotFoundError indicates a named zone could not be located in any
// configured zoneinfo root.
type NotFoundError struct {
	Name  string
	Cause error
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return "zone: " + e.Name + " not found: " + e.Cause.Error()
	}
	return "zone: " + e.Name + " not found"
}

func (e *NotFoundError) Unwrap() error { return e.Cause }

// FormatError indicates a zoneinfo file failed TZif parsing.
type FormatError struct {
	Name   string
	Reason string
}

func (e *FormatError) Error() string { return "zone: " + e.Name + ": " + e.Reason }

// Localize returns the Offset in effect at unixSeconds.
func (z *Zone) Localize(unixSeconds int64) Offset {
	idx := sort.Search(len(z.transitions), func(i int) bool {
		return z.transitions[i].At > unixSeconds
	}) - 1

	if idx < 0 || (idx == len(z.transitions)-1 && z.rule.stdName != "") {
		return z.ruleOffset(unixSeconds, false)
	}
	t := z.transitions[idx].Type
	return Offset{Seconds: int(t.UTOffsetSeconds), Designation: t.Designation, IsDST: t.IsDST}
}

// ruleOffset falls back to the POSIX footer rule for instants at or beyond
// the last recorded transition (when the zone has a footer rule), before
// the first one, or for zones with none at all.
func (z *Zone) ruleOffset(unixSeconds int64, _ bool) Offset {
	if !z.rule.hasDST {
		return Offset{Seconds: z.rule.stdOffset, Designation: z.rule.stdName}
	}
	if inDST(z.rule, unixSeconds) {
		return Offset{Seconds: z.rule.dstOffset, Designation: z.rule.dstName, IsDST: true}
	}
	return Offset{Seconds: z.rule.stdOffset, Designation: z.rule.stdName}
}

// Normalize resolves a local wall-clock instant (seconds since the unix
// epoch, as if read with a UTC offset of zero) into the actual unix
// time and the Offset that applies, choosing the earlier of two
// candidates when the wall time is ambiguous (a "fall back" transition)
// and erring when it names a time inside a "spring forward" gap.
func (z *Zone) Normalize(localSeconds int64) (int64, Offset, error) {
	found := false
	var bestUnix int64
	var bestOffset Offset
	for _, guessOffset := range z.candidateOffsets(localSeconds) {
		unix := localSeconds - int64(guessOffset.Seconds)
		if off := z.Localize(unix); off.Seconds == guessOffset.Seconds && (!found || unix < bestUnix) {
			found, bestUnix, bestOffset = true, unix, off
		}
	}
	if !found {
		return 0, Offset{}, &GapError{LocalSeconds: localSeconds}
	}
	return bestUnix, bestOffset, nil
}

// candidateOffsets returns the distinct offsets in effect near
// localSeconds, to disambiguate or detect gaps.
func (z *Zone) candidateOffsets(localSeconds int64) []Offset {
	seen := map[int]bool{}
	var out []Offset
	for _, delta := range []int64{0, -86400} {
		o := z.Localize(localSeconds + delta)
		if !seen[o.Seconds] {
			seen[o.Seconds] = true
			out = append(out, o)
		}
	}
	return out
}

// GapError indicates a local wall-clock instant fell inside a
// "spring forward" transition and so never actually occurred.
type GapError struct {
	LocalSeconds int64
}

func (e *GapError) Error() string {
	return "zone: local time falls in a DST gap and was never observed"
}

// Transitions returns the recorded transitions with At in [from, to).
func (z *Zone) Transitions(from, to int64) []tzif.Transition {
	lo := sort.Search(len(z.transitions), func(i int) bool { return z.transitions[i].At >= from })
	hi := sort.Search(len(z.transitions), func(i int) bool { return z.transitions[i].At >= to })
	if lo >= hi {
		return nil
	}
	out := make([]tzif.Transition, hi-lo)
	copy(out, z.transitions[lo:hi])
	return out
}

// Slice is an alias for Transitions, named to match the "slice of
// transitions in a window" framing used elsewhere in rhythm.
func (z *Zone) Slice(from, to int64) []tzif.Transition { return z.Transitions(from, to) }

func inDST(r posixRule, unixSeconds int64) bool {
	year := yearOf(unixSeconds)
	start := ruleInstant(r.start, year, r.stdOffset)
	end := ruleInstant(r.end, year, r.dstOffset)
	if start < end {
		return unixSeconds >= start && unixSeconds < end
	}
	// Southern-hemisphere style: DST spans the year boundary.
	return unixSeconds >= start || unixSeconds < end
}

// yearOf returns the exact proleptic Gregorian year containing
// unixSeconds, via the inverse of daysSinceEpoch's Julian Day Number
// arithmetic — no floating point.
func yearOf(unixSeconds int64) int {
	days := floorDiv64(unixSeconds, 86400)
	year, _, _ := gregorianFromDays(days)
	return year
}

// gregorianFromDays is the inverse of daysSinceEpoch: given a signed day
// count since the unix epoch, it returns the proleptic Gregorian
// (year, month0, day0), both 0-based.
func gregorianFromDays(days int64) (year, month0, day0 int) {
	dd := days + unixEpochJDN

	f := dd + 1401 + ((4*dd+274277)/146097)*3/4 - 38
	e := 4*f + 3
	g := (e % 1461) / 4
	h := 5*g + 2

	d := int(h%153)/5 + 1
	m := int(h/153+2) % 12
	y := int(e/1461 - 4716 + (14-int64(m+1))/12)
	return y, m, d - 1
}

const unixEpochJDN = 2440588

func floorDiv64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ruleInstant returns the unix-seconds instant named by tr in the given
// year, interpreted in the local time denoted by baseOffset (POSIX TZ
// transition times are local, not UTC).
func ruleInstant(tr transitionRule, year, baseOffset int) int64 {
	var dayOfYear int
	switch tr.kind {
	case 'J':
		dayOfYear = tr.day
		if tr.day >= 60 && isLeapYear(year) {
			dayOfYear++
		}
		dayOfYear-- // J1 == Jan 1 == ordinal 0
	case 'N':
		dayOfYear = tr.day
	case 'M':
		dayOfYear = ordinalOfMonthWeekday(year, tr.month, tr.week, tr.weekday)
	}
	midnightUnix := daysSinceEpoch(year, 0, 0) + int64(dayOfYear)
	return midnightUnix*86400 + int64(tr.atSecond) - int64(baseOffset)
}

var daysInMonthTable = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func monthLength(year, month1 int) int {
	if month1 == 2 && isLeapYear(year) {
		return 29
	}
	return daysInMonthTable[month1-1]
}

// ordinalOfMonthWeekday returns the 0-based day-of-year of the `week`-th
// occurrence (1-5, 5 meaning "last") of `weekday` (0=Sunday) in the
// 1-based `month` of `year`.
func ordinalOfMonthWeekday(year, month, week, weekday int) int {
	firstOfMonth := daysSinceEpoch(year, month-1, 0)
	firstWeekday := floorMod(int(firstOfMonth)+4, 7) // 1970-01-01 was a Thursday (weekday 4)
	delta := floorMod(weekday-firstWeekday, 7)
	day := delta + (week-1)*7
	if week == 5 {
		for day >= monthLength(year, month) {
			day -= 7
		}
	}
	return int(firstOfMonth-daysSinceEpoch(year, 0, 0)) + day
}

// daysSinceEpoch converts a proleptic Gregorian (year, month0, day0) into
// a day count since the unix epoch, duplicating the core of rhythm's own
// calendar math so this package stays free of a dependency on it.
func daysSinceEpoch(year, month0, day0 int) int64 {
	y := year + floorDiv(month0, 12)
	m := int64(floorMod(month0, 12) + 1)
	d := int64(day0 + 1)
	yy := int64(y)

	jdn := (1461*(yy+4800+(m-14)/12))/4 +
		(367*(m-2-12*((m-14)/12)))/12 -
		(3*((yy+4900+(m-14)/12)/100))/4 +
		d - 32075
	const unixEpochJDN = 2440588
	return jdn - unixEpochJDN
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}
