package pricing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestEstimate(t *testing.T) {
	table := Table{
		"standard": {
			"gpt-4.1":  {Input: 2.0, Cached: 0.5, Output: 8.0},
			"no-cache": {Input: 3.0, Cached: Unset, Output: 12.0},
			"free-out": {Input: 5.0, Cached: 1.25, Output: Unset},
		},
	}

	tests := []struct {
		name            string
		tier, model     string
		in, cached, out int64
		want            float64
		wantOK          bool
	}{
		{
			// (800*2.0 + 200*0.5 + 500*8.0) / 1e6
			name: "CachedSubtractedFromInput",
			tier: "standard", model: "gpt-4.1",
			in: 1000, cached: 200, out: 500,
			want: 0.0057, wantOK: true,
		},
		{
			name: "UnsetCachedFallsBackToInputRate",
			tier: "standard", model: "no-cache",
			in: 1000, cached: 400, out: 0,
			// 600*3.0 + 400*3.0 = full input rate either way
			want: 0.003, wantOK: true,
		},
		{
			name: "UnsetOutputBilledAtZero",
			tier: "standard", model: "free-out",
			in: 0, cached: 0, out: 1_000_000,
			want: 0, wantOK: true,
		},
		{
			name: "CachedExceedingInputClampsToZero",
			tier: "standard", model: "gpt-4.1",
			in: 100, cached: 300, out: 0,
			// input billable clamps at 0; cached still billed
			want: 300 * 0.5 / 1e6, wantOK: true,
		},
		{
			name: "UnknownModelNoEstimate",
			tier: "standard", model: "gpt-99",
			in: 1000, cached: 0, out: 1000,
			wantOK: false,
		},
		{
			name: "UnknownTierNoEstimate",
			tier: "mystery", model: "gpt-4.1",
			in: 1000, cached: 0, out: 1000,
			wantOK: false,
		},
		{
			name: "ZeroTokensZeroCost",
			tier: "standard", model: "gpt-4.1",
			want: 0, wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Estimate(table, tt.tier, tt.model, tt.in, tt.cached, tt.out)
			if ok != tt.wantOK {
				t.Fatalf("Estimate() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !almostEqual(got, tt.want) {
				t.Errorf("Estimate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultTable(t *testing.T) {
	table := Default()

	for _, tier := range []string{"standard", "priority", "flex", "batch"} {
		if !table.HasTier(tier) {
			t.Errorf("default table missing tier %q", tier)
		}
	}

	tiers := table.Tiers()
	want := []string{"batch", "flex", "priority", "standard"}
	if len(tiers) != len(want) {
		t.Fatalf("Tiers() = %v, want %v", tiers, want)
	}
	for i := range want {
		if tiers[i] != want[i] {
			t.Errorf("Tiers()[%d] = %q, want %q", i, tiers[i], want[i])
		}
	}

	// An unset cached rate must fall back to the input rate.
	r, ok := table.Lookup("standard", "computer-use-preview")
	if !ok {
		t.Fatal("expected standard/computer-use-preview in default table")
	}
	if !almostEqual(r.EffectiveCached(), r.Input) {
		t.Errorf("EffectiveCached() = %v, want input rate %v", r.EffectiveCached(), r.Input)
	}
}
