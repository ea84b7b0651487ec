package rhythm

import (
	"math/big"
	"testing"

	"github.com/go-rhythm/rhythm/unit"
)

func TestGenesisNeverOrdering(t *testing.T) {
	ctx := testContext(t)
	genesis := Genesis(ctx)
	never := Never(ctx)

	cmp, err := genesis.Compare(never)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp >= 0 {
		t.Errorf("Genesis.Compare(Never) = %d, want < 0", cmp)
	}
}

func TestPresentResolveFailsWithoutHook(t *testing.T) {
	saved := NowHook
	NowHook = nil
	defer func() { NowHook = saved }()

	ctx := testContext(t)
	p := Present(ctx)
	if _, err := p.Resolve(); err == nil {
		t.Fatal("Resolve() with nil NowHook should fail")
	}
}

func TestElapseSaturatingGenesisAndNever(t *testing.T) {
	ctx := testContext(t)
	oneDay, err := NewMeasure(ctx, unit.DayUnit, big.NewInt(1))
	if err != nil {
		t.Fatalf("NewMeasure: %v", err)
	}

	genesis := Genesis(ctx)
	after, err := genesis.ElapseSaturating(oneDay)
	if err != nil {
		t.Fatalf("ElapseSaturating: %v", err)
	}
	if !after.IsEternal() {
		t.Error("Genesis + 1 day should remain eternal (saturating)")
	}

	never := Never(ctx)
	after, err = never.ElapseSaturating(oneDay)
	if err != nil {
		t.Fatalf("ElapseSaturating: %v", err)
	}
	if !after.IsEternal() {
		t.Error("Never + 1 day should remain eternal (saturating)")
	}
}
