package tariff

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeDuty_PreferenceAdValorem(t *testing.T) {
	resolved := ResolvedRate{
		Source:     SourcePreference,
		Preference: &PreferenceRecord{ImporterCode: "SGP", ExporterCode: "MYS", HS6: "290531", RatePct: dec("10")},
	}

	res, err := ComputeDuty(resolved, dec("100.00"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Duty.Equal(dec("10.00")) {
		t.Fatalf("duty = %s, want 10.00", res.Duty)
	}
	if res.Applied.Source != SourcePreference || res.Applied.Rule != RuleAdValorem {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestComputeDuty_PreferenceIgnoresWeight(t *testing.T) {
	resolved := ResolvedRate{
		Source:     SourcePreference,
		Preference: &PreferenceRecord{RatePct: dec("5")},
	}

	res, err := ComputeDuty(resolved, dec("200.00"), decPtr("12.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Duty.Equal(dec("10.00")) {
		t.Fatalf("duty = %s, want 10.00", res.Duty)
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "net weight ignored under preferential rate" {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestComputeDuty_SuspensionCarriesNote(t *testing.T) {
	resolved := ResolvedRate{
		Source:     SourceSuspension,
		Suspension: &SuspensionRecord{RatePct: dec("2.5"), Note: "autonomous suspension, raw inputs", Active: true},
	}

	res, err := ComputeDuty(resolved, dec("400.00"), decPtr("3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Duty.Equal(dec("10.00")) {
		t.Fatalf("duty = %s, want 10.00", res.Duty)
	}
	if res.Applied.Note != "autonomous suspension, raw inputs" {
		t.Fatalf("note not carried: %+v", res.Applied)
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "net weight ignored under suspended rate" {
		t.Fatalf("warnings = %v", res.Warnings)
	}
}

func TestComputeDuty_MeasureRules(t *testing.T) {
	tests := []struct {
		name     string
		measure  MeasureRecord
		value    string
		weight   *string
		wantDuty string
		wantRule DutyRule
		wantErr  error
	}{
		{
			name:     "ad valorem only",
			measure:  MeasureRecord{AdValoremPct: decPtr("7.5")},
			value:    "100.00",
			wantDuty: "7.50",
			wantRule: RuleAdValorem,
		},
		{
			name:     "specific only",
			measure:  MeasureRecord{SpecificPerKg: decPtr("2.00")},
			value:    "100.00",
			weight:   strPtr("30"),
			wantDuty: "60.00",
			wantRule: RuleSpecific,
		},
		{
			name:    "specific without weight",
			measure: MeasureRecord{SpecificPerKg: decPtr("2.00")},
			value:   "100.00",
			wantErr: ErrWeightRequired,
		},
		{
			name:     "compound",
			measure:  MeasureRecord{AdValoremPct: decPtr("5"), SpecificPerKg: decPtr("1.50"), Compound: true},
			value:    "200.00",
			weight:   strPtr("10"),
			wantDuty: "25.00", // 200*5% + 10*1.50
			wantRule: RuleCompound,
		},
		{
			name:    "compound without weight",
			measure: MeasureRecord{AdValoremPct: decPtr("5"), SpecificPerKg: decPtr("1.50"), Compound: true},
			value:   "200.00",
			wantErr: ErrWeightRequired,
		},
		{
			name:    "negative ad valorem",
			measure: MeasureRecord{AdValoremPct: decPtr("-1")},
			value:   "100.00",
			wantErr: ErrInvalidRate,
		},
		{
			name:    "negative specific",
			measure: MeasureRecord{SpecificPerKg: decPtr("-0.5")},
			value:   "100.00",
			weight:  strPtr("10"),
			wantErr: ErrInvalidRate,
		},
		{
			name:    "no rate fields at all",
			measure: MeasureRecord{},
			value:   "100.00",
			wantErr: ErrInvalidRate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var weight *decimal.Decimal
			if tc.weight != nil {
				weight = decPtr(*tc.weight)
			}

			m := tc.measure
			res, err := ComputeDuty(ResolvedRate{Source: SourceMeasure, Measure: &m}, dec(tc.value), weight)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.Duty.Equal(dec(tc.wantDuty)) {
				t.Fatalf("duty = %s, want %s", res.Duty, tc.wantDuty)
			}
			if res.Applied.Rule != tc.wantRule {
				t.Fatalf("rule = %s, want %s", res.Applied.Rule, tc.wantRule)
			}
		})
	}
}

func TestComputeDuty_RoundsHalfUp(t *testing.T) {
	// 100.33 * 3.125% = 3.1353125 -> 3.14
	resolved := ResolvedRate{Source: SourceMeasure, Measure: &MeasureRecord{AdValoremPct: decPtr("3.125")}}
	res, err := ComputeDuty(resolved, dec("100.33"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Duty.Equal(dec("3.14")) {
		t.Fatalf("duty = %s, want 3.14", res.Duty)
	}

	// 10.00 * 0.05% = 0.005 -> exactly half, rounds up to 0.01
	resolved = ResolvedRate{Source: SourceMeasure, Measure: &MeasureRecord{AdValoremPct: decPtr("0.05")}}
	res, err = ComputeDuty(resolved, dec("10.00"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Duty.Equal(dec("0.01")) {
		t.Fatalf("duty = %s, want 0.01", res.Duty)
	}
}

func TestComputeDuty_NegativePreferenceRate(t *testing.T) {
	resolved := ResolvedRate{Source: SourcePreference, Preference: &PreferenceRecord{RatePct: dec("-3")}}
	_, err := ComputeDuty(resolved, dec("100.00"), nil)
	if !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("err = %v, want ErrInvalidRate", err)
	}
}

func strPtr(s string) *string { return &s }
