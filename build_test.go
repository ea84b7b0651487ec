package rhythm

import (
	"math/big"
	"testing"

	"github.com/go-rhythm/rhythm/unit"
)

func testContext(t *testing.T) *unit.Context {
	t.Helper()
	ctx, err := StandardContext()
	if err != nil {
		t.Fatalf("StandardContext: %v", err)
	}
	return ctx
}

func TestBuildDateRoundTripsThroughISO(t *testing.T) {
	ctx := testContext(t)
	p, err := BuildDate(ctx, 2026, 6, 28) // 2026-07-29, 0-based month/day
	if err != nil {
		t.Fatalf("BuildDate: %v", err)
	}
	s, err := FormatISO(p)
	if err != nil {
		t.Fatalf("FormatISO: %v", err)
	}
	if want := "2026-07-29"; s != want {
		t.Errorf("FormatISO = %q, want %q", s, want)
	}
}

func TestBuildDateNormalizesOutOfRangeMonth(t *testing.T) {
	ctx := testContext(t)
	// month0 == -1 rolls back one year, per spec law 6.
	p, err := BuildDate(ctx, 2025, -1, 0)
	if err != nil {
		t.Fatalf("BuildDate: %v", err)
	}
	s, err := FormatISO(p)
	if err != nil {
		t.Fatalf("FormatISO: %v", err)
	}
	if want := "2024-12-01"; s != want {
		t.Errorf("FormatISO = %q, want %q", s, want)
	}
}

func TestBuildWeekIsCanonicallyMonday(t *testing.T) {
	ctx := testContext(t)
	p, err := BuildWeek(ctx, 2026, 31)
	if err != nil {
		t.Fatalf("BuildWeek: %v", err)
	}
	dayPoint, err := p.In(unit.DayUnit)
	if err != nil {
		t.Fatalf("In(day): %v", err)
	}
	wd := weekdayOf(dayPoint.Int().Int64())
	if wd != Monday {
		t.Errorf("BuildWeek(2026, 31) weekday = %s, want Monday", wd)
	}
}

func TestOfBuildsUnitBag(t *testing.T) {
	ctx := testContext(t)
	m, err := Of(ctx, unit.Nanosecond,
		intComponent(unit.SecondUnit, 2),
		unit.Component{Unit: unit.Nanosecond, Amount: big.NewRat(500_000_000, 1)},
	)
	if err != nil {
		t.Fatalf("Of: %v", err)
	}
	if got := m.Int().Int64(); got != 2_500_000_000 {
		t.Errorf("Of(2s, 0.5s) = %d ns, want 2500000000", got)
	}
}

func TestBuildMonthRollsYear(t *testing.T) {
	ctx := testContext(t)
	p, err := BuildMonth(ctx, 2025, 12) // month0 == 12 rolls to January of next year
	if err != nil {
		t.Fatalf("BuildMonth: %v", err)
	}
	year, err := p.SelectInt("year", "")
	if err != nil {
		t.Fatalf("SelectInt(year): %v", err)
	}
	month0, err := p.SelectInt("month", "year")
	if err != nil {
		t.Fatalf("SelectInt(month): %v", err)
	}
	if year != 2026 || month0 != 0 {
		t.Errorf("BuildMonth(2025, 12) = (%d, %d), want (2026, 0)", year, month0)
	}
}
