package rhythm

import (
	"math/big"
	"testing"

	"github.com/go-rhythm/rhythm/unit"
)

func TestDateContainerPack(t *testing.T) {
	ctx := testContext(t)
	p, err := BuildDate(ctx, 2026, 6, 28)
	if err != nil {
		t.Fatalf("BuildDate: %v", err)
	}
	date, err := ctx.ContainerOf("date")
	if err != nil {
		t.Fatalf("ContainerOf(date): %v", err)
	}
	packed, err := date.Pack(p)
	if err != nil {
		t.Fatalf("Pack(date): %v", err)
	}
	got, ok := packed.([3]int)
	if !ok {
		t.Fatalf("Pack(date) returned %T, want [3]int", packed)
	}
	if want := [3]int{2026, 6, 28}; got != want {
		t.Errorf("Pack(date) = %v, want %v", got, want)
	}
}

func TestUnixContainerRoundTrip(t *testing.T) {
	ctx := testContext(t)
	p, err := BuildDateTime(ctx, 2026, 6, 28, 14, 30, 15, 0)
	if err != nil {
		t.Fatalf("BuildDateTime: %v", err)
	}
	unixC, err := ctx.ContainerOf("unix")
	if err != nil {
		t.Fatalf("ContainerOf(unix): %v", err)
	}
	packed, err := unixC.Pack(p)
	if err != nil {
		t.Fatalf("Pack(unix): %v", err)
	}
	secs, ok := packed.(*big.Int)
	if !ok {
		t.Fatalf("Pack(unix) returned %T, want *big.Int", packed)
	}

	components, err := unixC.Unpack(secs)
	if err != nil {
		t.Fatalf("Unpack(unix): %v", err)
	}
	rebuilt, err := Of(ctx, unit.Nanosecond, components...)
	if err != nil {
		t.Fatalf("Of: %v", err)
	}

	original, err := p.In(unit.Nanosecond)
	if err != nil {
		t.Fatalf("In(nanosecond): %v", err)
	}
	if rebuilt.Int().Cmp(original.Int()) != 0 {
		t.Errorf("unix round trip = %s, want %s", rebuilt.Int(), original.Int())
	}
}

func TestISOContainerRoundTrip(t *testing.T) {
	ctx := testContext(t)
	p, err := BuildDateTime(ctx, 2026, 6, 28, 14, 30, 15, 0)
	if err != nil {
		t.Fatalf("BuildDateTime: %v", err)
	}
	iso, err := ctx.ContainerOf("iso")
	if err != nil {
		t.Fatalf("ContainerOf(iso): %v", err)
	}
	packed, err := iso.Pack(p)
	if err != nil {
		t.Fatalf("Pack(iso): %v", err)
	}
	s, ok := packed.(string)
	if !ok {
		t.Fatalf("Pack(iso) returned %T, want string", packed)
	}
	if want := "2026-07-29T14:30:15"; s != want {
		t.Errorf("Pack(iso) = %q, want %q", s, want)
	}

	components, err := iso.Unpack(s)
	if err != nil {
		t.Fatalf("Unpack(iso): %v", err)
	}
	rebuilt, err := Of(ctx, unit.SecondUnit, components...)
	if err != nil {
		t.Fatalf("Of: %v", err)
	}
	asSecond, err := p.In(unit.SecondUnit)
	if err != nil {
		t.Fatalf("In(second): %v", err)
	}
	if rebuilt.Int().Cmp(asSecond.Int()) != 0 {
		t.Errorf("iso unpack round trip = %s, want %s", rebuilt.Int(), asSecond.Int())
	}
}

func TestSubsecondContainerPack(t *testing.T) {
	ctx := testContext(t)
	p, err := BuildDateTime(ctx, 2026, 6, 28, 14, 30, 15, 500_000_000)
	if err != nil {
		t.Fatalf("BuildDateTime: %v", err)
	}
	subsecond, err := ctx.ContainerOf("subsecond")
	if err != nil {
		t.Fatalf("ContainerOf(subsecond): %v", err)
	}
	packed, err := subsecond.Pack(p)
	if err != nil {
		t.Fatalf("Pack(subsecond): %v", err)
	}
	r, ok := packed.(*big.Rat)
	if !ok {
		t.Fatalf("Pack(subsecond) returned %T, want *big.Rat", packed)
	}
	if r.Cmp(big.NewRat(1, 2)) != 0 {
		t.Errorf("Pack(subsecond) = %s, want 1/2", r)
	}
}
