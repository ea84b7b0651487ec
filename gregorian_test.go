package rhythm

import (
	"fmt"
	"testing"
)

func TestDayOfEpochRoundTrip(t *testing.T) {
	for _, tt := range []struct {
		year, month0, day0 int
		weekday            Weekday
		yearDay            int
		isoYear, isoWeek   int
	}{
		{1969, 11, 28, Monday, 363, 1970, 1},
		{1970, 0, 0, Thursday, 1, 1970, 1},
		{1968, 4, 23, Friday, 145, 1968, 21},
		{1950, 0, 0, Sunday, 1, 1949, 52},
		{1958, 0, 0, Wednesday, 1, 1958, 1},
		{2020, 11, 30, Thursday, 366, 2020, 53},
		{2021, 0, 0, Friday, 1, 2020, 53},
		{2000, 1, 28, Tuesday, 60, 2000, 9},
		{2000, 2, 0, Wednesday, 61, 2000, 9},
	} {
		t.Run(fmt.Sprintf("%04d-%02d-%02d", tt.year, tt.month0, tt.day0), func(t *testing.T) {
			day := dayOfEpoch(tt.year, tt.month0, tt.day0)

			year, month0, day0 := fromDayOfEpoch(day)
			if year != tt.year || month0 != tt.month0 || day0 != tt.day0 {
				t.Errorf("fromDayOfEpoch(%d) = (%d, %d, %d), want (%d, %d, %d)",
					day, year, month0, day0, tt.year, tt.month0, tt.day0)
			}

			if wd := weekdayOf(day); wd != tt.weekday {
				t.Errorf("weekdayOf(%d) = %s, want %s", day, wd, tt.weekday)
			}

			if yd := ordinalDate(tt.year, tt.month0, tt.day0); yd != tt.yearDay {
				t.Errorf("ordinalDate = %d, want %d", yd, tt.yearDay)
			}

			isoYear, isoWeekNum := isoWeek(day)
			if isoYear != tt.isoYear || isoWeekNum != tt.isoWeek {
				t.Errorf("isoWeek(%d) = (%d, %d), want (%d, %d)", day, isoYear, isoWeekNum, tt.isoYear, tt.isoWeek)
			}
		})
	}
}

func TestWeekdayOfEpochIsMonday(t *testing.T) {
	// termEpochJDN is pinned to a Monday so that BuildWeek's day/7 scaling
	// needs no remainder correction; day 0 of the term epoch must itself
	// report Monday.
	if wd := weekdayOf(0); wd != Monday {
		t.Fatalf("weekdayOf(0) = %s, want Monday", wd)
	}
}

func TestMondayOfISOWeekIsAlwaysMonday(t *testing.T) {
	for year := 1995; year < 2030; year++ {
		for week := 1; week <= 52; week++ {
			monday := mondayOfISOWeek(year, week)
			if wd := weekdayOf(monday); wd != Monday {
				t.Fatalf("mondayOfISOWeek(%d, %d) = day %d, weekday %s, want Monday", year, week, monday, wd)
			}
		}
	}
}

func TestFloorDivFloorMod(t *testing.T) {
	cases := []struct{ a, b, div, mod int }{
		{7, 3, 2, 1},
		{-7, 3, -3, 2},
		{7, -3, -3, -2},
		{-7, -3, 2, -1},
		{0, 5, 0, 0},
	}
	for _, c := range cases {
		if d := floorDiv(c.a, c.b); d != c.div {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", c.a, c.b, d, c.div)
		}
		if m := floorMod(c.a, c.b); m != c.mod {
			t.Errorf("floorMod(%d, %d) = %d, want %d", c.a, c.b, m, c.mod)
		}
	}
}

func TestMonthLengthLeapYear(t *testing.T) {
	for _, tt := range []struct {
		year, month, length int
	}{
		{2000, 2, 29},
		{1900, 2, 28},
		{2024, 2, 29},
		{2023, 2, 28},
		{2023, 4, 30},
		{2023, 1, 31},
	} {
		if l := monthLength(tt.year, tt.month); l != tt.length {
			t.Errorf("monthLength(%d, %d) = %d, want %d", tt.year, tt.month, l, tt.length)
		}
	}
}
