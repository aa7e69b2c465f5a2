package tariff

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func quoteOK(cost string) freightFunc {
	return func(_ context.Context, _, _, _ string, _ decimal.Decimal) (*FreightQuote, error) {
		return &FreightQuote{
			Cost:        dec(cost),
			MinCost:     dec(cost).Mul(dec("0.85")).Round(2),
			MaxCost:     dec(cost).Mul(dec("1.15")).Round(2),
			TransitDays: 12,
		}, nil
	}
}

func quoteFail() freightFunc {
	return func(_ context.Context, _, _, _ string, _ decimal.Decimal) (*FreightQuote, error) {
		return nil, errors.New("freight service unreachable")
	}
}

func TestEngine_PreferenceWinsScenario(t *testing.T) {
	gw := &memGateway{
		preferences: []PreferenceRecord{{
			ImporterCode: "SGP", ExporterCode: "MYS", HS6: "290531",
			ValidFrom: date(2024, time.January, 1), ValidTo: timePtr(date(2024, time.December, 31)),
			RatePct: dec("10"),
		}},
		measures: []MeasureRecord{{
			ImporterCode: "SGP", HS6: "290531",
			ValidFrom: date(2020, time.January, 1), AdValoremPct: decPtr("7.5"),
		}},
	}
	engine := NewEngine(gw, quoteFail(), dec("1.5"))

	res, err := engine.Calculate(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.FinalTradeValue.Equal(dec("110.00")) {
		t.Fatalf("final trade value = %s, want 110.00", res.FinalTradeValue)
	}
	if res.Applied.Source != SourcePreference {
		t.Fatalf("applied source = %s, want preference", res.Applied.Source)
	}
	if !res.TotalLandedCost.Equal(res.FinalTradeValue) {
		t.Fatalf("landed cost %s should equal final value when freight not requested", res.TotalLandedCost)
	}
}

func TestEngine_ValidationRejectsBeforeLookup(t *testing.T) {
	calls := 0
	gw := &memGateway{}
	engine := NewEngine(gw, freightFunc(func(context.Context, string, string, string, decimal.Decimal) (*FreightQuote, error) {
		calls++
		return nil, nil
	}), dec("1.5"))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing importer", func(r *Request) { r.ImporterCode = "" }},
		{"short importer", func(r *Request) { r.ImporterCode = "SG" }},
		{"bad exporter", func(r *Request) { r.ExporterCode = "M" }},
		{"missing hs6", func(r *Request) { r.HS6 = "" }},
		{"non-numeric hs6", func(r *Request) { r.HS6 = "2905AB" }},
		{"zero trade value", func(r *Request) { r.TradeValue = decimal.Zero }},
		{"negative trade value", func(r *Request) { r.TradeValue = dec("-5") }},
		{"too many decimals", func(r *Request) { r.TradeValue = dec("10.125") }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"non-positive weight", func(r *Request) { r.NetWeightKg = decPtr("0") }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			req.IncludeFreight = true
			tc.mutate(&req)

			_, err := engine.Calculate(context.Background(), req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("err = %v, want ErrInvalidRequest", err)
			}
		})
	}

	if calls != 0 {
		t.Fatalf("freight gateway called %d times during validation failures", calls)
	}
}

func TestEngine_SpecificRateWithoutWeight(t *testing.T) {
	gw := &memGateway{
		measures: []MeasureRecord{{
			ImporterCode: "SGP", HS6: "290531",
			ValidFrom: date(2020, time.January, 1), SpecificPerKg: decPtr("2.00"),
		}},
	}
	engine := NewEngine(gw, quoteFail(), dec("1.5"))

	req := baseRequest()
	req.ExporterCode = ""

	_, err := engine.Calculate(context.Background(), req)
	if !errors.Is(err, ErrWeightRequired) {
		t.Fatalf("err = %v, want ErrWeightRequired", err)
	}
}

func TestEngine_NegativeRateGuarded(t *testing.T) {
	gw := &memGateway{
		measures: []MeasureRecord{{
			ImporterCode: "SGP", HS6: "290531",
			ValidFrom: date(2020, time.January, 1), AdValoremPct: decPtr("-1"),
		}},
	}
	engine := NewEngine(gw, quoteFail(), dec("1.5"))

	req := baseRequest()
	req.ExporterCode = ""

	_, err := engine.Calculate(context.Background(), req)
	if !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("err = %v, want ErrInvalidRate", err)
	}
}

func TestEngine_FreightQuoted_CIF(t *testing.T) {
	gw := &memGateway{
		measures: []MeasureRecord{{
			ImporterCode: "SGP", HS6: "290531",
			ValidFrom: date(2020, time.January, 1), AdValoremPct: decPtr("10"),
		}},
	}
	engine := NewEngine(gw, quoteOK("50.00"), dec("2"))

	req := baseRequest()
	req.ExporterCode = ""
	req.IncludeFreight = true
	req.TransportMode = "SEA"
	req.NetWeightKg = decPtr("100")

	res, err := engine.Calculate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BasisDeclared != BasisCIF || res.BasisApplied != BasisCIF {
		t.Fatalf("basis = %s/%s, want CIF/CIF", res.BasisDeclared, res.BasisApplied)
	}
	if res.Freight == nil {
		t.Fatal("freight breakdown missing")
	}
	// final 110.00 + freight 50.00 = 160.00 insured; insurance 2% = 3.20
	if !res.Freight.InsuranceCost.Equal(dec("3.20")) {
		t.Fatalf("insurance = %s, want 3.20", res.Freight.InsuranceCost)
	}
	// 110.00 + 50.00 + 3.20
	if !res.TotalLandedCost.Equal(dec("163.20")) {
		t.Fatalf("landed cost = %s, want 163.20", res.TotalLandedCost)
	}
}

func TestEngine_FreightDegradesToFOB(t *testing.T) {
	gw := &memGateway{
		measures: []MeasureRecord{{
			ImporterCode: "SGP", HS6: "290531",
			ValidFrom: date(2020, time.January, 1), AdValoremPct: decPtr("7.5"),
		}},
	}
	engine := NewEngine(gw, quoteFail(), dec("1.5"))

	req := baseRequest()
	req.ExporterCode = ""
	req.IncludeFreight = true
	req.TransportMode = "AIR"

	res, err := engine.Calculate(context.Background(), req)
	if err != nil {
		t.Fatalf("freight failure must not fail the calculation: %v", err)
	}
	if res.BasisDeclared != BasisCIF {
		t.Fatalf("declared basis = %s, want CIF", res.BasisDeclared)
	}
	if res.BasisApplied != BasisFOB {
		t.Fatalf("applied basis = %s, want FOB", res.BasisApplied)
	}
	if res.Freight != nil {
		t.Fatalf("freight fields should be absent on fallback: %+v", res.Freight)
	}
	if !res.TotalLandedCost.Equal(res.FinalTradeValue) {
		t.Fatalf("landed cost = %s, want final trade value %s", res.TotalLandedCost, res.FinalTradeValue)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a degraded-mode warning")
	}
}

func TestEngine_CancellationPropagatesFromRateGateway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gw := &memGateway{err: ctx.Err()}
	engine := NewEngine(gw, quoteFail(), dec("1.5"))

	_, err := engine.Calculate(ctx, baseRequest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestEngine_Idempotence(t *testing.T) {
	gw := &memGateway{
		preferences: []PreferenceRecord{{
			ImporterCode: "SGP", ExporterCode: "MYS", HS6: "290531",
			ValidFrom: date(2024, time.January, 1), RatePct: dec("10"),
		}},
	}
	engine := NewEngine(gw, quoteOK("25.00"), dec("1.5"))

	req := baseRequest()
	req.IncludeFreight = true
	req.TransportMode = "SEA"

	first, err := engine.Calculate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Calculate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestEngine_BatchIsolatesFailures(t *testing.T) {
	gw := &memGateway{
		measures: []MeasureRecord{{
			ImporterCode: "SGP", HS6: "290531",
			ValidFrom: date(2020, time.January, 1), AdValoremPct: decPtr("7.5"),
		}},
	}
	engine := NewEngine(gw, quoteFail(), dec("1.5"))

	good := baseRequest()
	good.ExporterCode = ""

	unknown := baseRequest()
	unknown.ExporterCode = ""
	unknown.HS6 = "999999"

	invalid := baseRequest()
	invalid.ImporterCode = ""

	items := engine.CalculateBatch(context.Background(), []Request{good, unknown, invalid, good})
	if len(items) != 4 {
		t.Fatalf("got %d items, want 4", len(items))
	}
	if items[0].Err != nil || items[0].Result == nil {
		t.Fatalf("slot 0 should succeed: %v", items[0].Err)
	}
	if !errors.Is(items[1].Err, ErrRateNotFound) {
		t.Fatalf("slot 1 err = %v, want ErrRateNotFound", items[1].Err)
	}
	if !errors.Is(items[2].Err, ErrInvalidRequest) {
		t.Fatalf("slot 2 err = %v, want ErrInvalidRequest", items[2].Err)
	}
	if items[3].Err != nil {
		t.Fatalf("slot 3 should succeed despite sibling failures: %v", items[3].Err)
	}
	if !items[3].Result.FinalTradeValue.Equal(dec("107.50")) {
		t.Fatalf("slot 3 final value = %s, want 107.50", items[3].Result.FinalTradeValue)
	}
}
