package rhythm

import "testing"

func TestFormatAndParseISORoundTrip(t *testing.T) {
	ctx := testContext(t)
	for _, s := range []string{
		"2026-07-29T14:30:15",
		"2026-07-29T14:30:15.5",
		"2026-07-29",
		"2026-07",
		"2026",
	} {
		p, err := ParseISO(ctx, s)
		if err != nil {
			t.Errorf("ParseISO(%q): %v", s, err)
			continue
		}
		out, err := FormatISO(p)
		if err != nil {
			t.Errorf("FormatISO: %v", err)
			continue
		}
		if out != s {
			t.Errorf("round trip: ParseISO(%q) -> FormatISO -> %q, want %q", s, out, s)
		}
	}
}

func TestParseISORejectsMissingYear(t *testing.T) {
	if _, err := ParseISOComponents(""); err == nil {
		t.Fatal("ParseISOComponents(\"\") should fail")
	}
}

func TestFormatLongMatchesCalendarFields(t *testing.T) {
	ctx := testContext(t)
	p, err := BuildDate(ctx, 2026, 6, 28) // 2026-07-29, a Wednesday
	if err != nil {
		t.Fatalf("BuildDate: %v", err)
	}
	s, err := FormatLong(p)
	if err != nil {
		t.Fatalf("FormatLong: %v", err)
	}
	if want := "Wednesday, 29 July 2026"; s != want {
		t.Errorf("FormatLong = %q, want %q", s, want)
	}
}
