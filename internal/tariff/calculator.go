package tariff

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// DutyResult carries the rounded duty, the arithmetic rule that produced it
// and any warnings accumulated along the way.
type DutyResult struct {
	Duty     decimal.Decimal
	Applied  AppliedRate
	Warnings []string
}

// ComputeDuty converts a resolved record plus trade inputs into a duty
// amount, rounded half-up to 2 decimals.
//
// Preference and suspension rates are ad valorem only; a supplied net weight
// is ignored under them and reported as a warning. Measures pick their rule
// from which rate fields are populated: ad valorem, specific (requires
// weight) or compound (both components, requires weight).
func ComputeDuty(rate ResolvedRate, tradeValue decimal.Decimal, netWeightKg *decimal.Decimal) (DutyResult, error) {
	switch rate.Source {
	case SourcePreference:
		return adValoremDuty(rate.Source, rate.Preference.RatePct, "", tradeValue, netWeightKg)
	case SourceSuspension:
		return adValoremDuty(rate.Source, rate.Suspension.RatePct, rate.Suspension.Note, tradeValue, netWeightKg)
	case SourceMeasure:
		return measureDuty(rate.Measure, tradeValue, netWeightKg)
	default:
		return DutyResult{}, fmt.Errorf("%w: unknown rate source %q", ErrInvalidRate, rate.Source)
	}
}

func adValoremDuty(source RateSource, ratePct decimal.Decimal, note string, tradeValue decimal.Decimal, netWeightKg *decimal.Decimal) (DutyResult, error) {
	if ratePct.IsNegative() {
		return DutyResult{}, fmt.Errorf("%w: negative %s rate %s", ErrInvalidRate, source, ratePct)
	}

	var warnings []string
	if netWeightKg != nil {
		switch source {
		case SourceSuspension:
			warnings = append(warnings, "net weight ignored under suspended rate")
		default:
			warnings = append(warnings, "net weight ignored under preferential rate")
		}
	}

	duty := tradeValue.Mul(ratePct.Div(oneHundred)).Round(2)
	return DutyResult{
		Duty: duty,
		Applied: AppliedRate{
			Source:  source,
			Rule:    RuleAdValorem,
			RatePct: &ratePct,
			Note:    note,
		},
		Warnings: warnings,
	}, nil
}

func measureDuty(m *MeasureRecord, tradeValue decimal.Decimal, netWeightKg *decimal.Decimal) (DutyResult, error) {
	if m.AdValoremPct == nil && m.SpecificPerKg == nil {
		return DutyResult{}, fmt.Errorf("%w: measure carries no rate fields", ErrInvalidRate)
	}
	if m.AdValoremPct != nil && m.AdValoremPct.IsNegative() {
		return DutyResult{}, fmt.Errorf("%w: negative ad-valorem rate %s", ErrInvalidRate, m.AdValoremPct)
	}
	if m.SpecificPerKg != nil && m.SpecificPerKg.IsNegative() {
		return DutyResult{}, fmt.Errorf("%w: negative specific rate %s", ErrInvalidRate, m.SpecificPerKg)
	}

	compound := m.Compound && m.AdValoremPct != nil && m.SpecificPerKg != nil

	switch {
	case compound:
		if netWeightKg == nil {
			return DutyResult{}, fmt.Errorf("%w: compound measure rate", ErrWeightRequired)
		}
		adval := tradeValue.Mul(m.AdValoremPct.Div(oneHundred))
		specific := netWeightKg.Mul(*m.SpecificPerKg)
		return DutyResult{
			Duty: adval.Add(specific).Round(2),
			Applied: AppliedRate{
				Source:        SourceMeasure,
				Rule:          RuleCompound,
				RatePct:       m.AdValoremPct,
				SpecificPerKg: m.SpecificPerKg,
				Compound:      true,
			},
		}, nil

	case m.SpecificPerKg != nil && m.AdValoremPct == nil:
		if netWeightKg == nil {
			return DutyResult{}, fmt.Errorf("%w: specific measure rate", ErrWeightRequired)
		}
		return DutyResult{
			Duty: netWeightKg.Mul(*m.SpecificPerKg).Round(2),
			Applied: AppliedRate{
				Source:        SourceMeasure,
				Rule:          RuleSpecific,
				SpecificPerKg: m.SpecificPerKg,
			},
		}, nil

	default:
		// Ad valorem only, or both populated without the compound flag —
		// the ad-valorem component governs.
		return DutyResult{
			Duty: tradeValue.Mul(m.AdValoremPct.Div(oneHundred)).Round(2),
			Applied: AppliedRate{
				Source:  SourceMeasure,
				Rule:    RuleAdValorem,
				RatePct: m.AdValoremPct,
			},
		}, nil
	}
}
