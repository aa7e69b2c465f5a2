package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/repository"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/tariff"
)

// stubGateway serves a single 5% ad-valorem measure for SGP/290531.
type stubGateway struct{}

func (stubGateway) FindPreference(ctx context.Context, importer, exporter, hs6 string, date time.Time) (*tariff.PreferenceRecord, error) {
	return nil, nil
}

func (stubGateway) FindActiveSuspension(ctx context.Context, importer, hs6 string, date time.Time) (*tariff.SuspensionRecord, error) {
	return nil, nil
}

func (stubGateway) FindMeasure(ctx context.Context, importer, hs6 string, date time.Time) (*tariff.MeasureRecord, error) {
	if importer != "SGP" || hs6 != "290531" {
		return nil, nil
	}
	rate := decimal.RequireFromString("5")
	return &tariff.MeasureRecord{
		ImporterCode: importer,
		HS6:          hs6,
		ValidFrom:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		AdValoremPct: &rate,
	}, nil
}

type noFreight struct{}

func (noFreight) Quote(ctx context.Context, mode, origin, dest string, weightKg decimal.Decimal) (*tariff.FreightQuote, error) {
	return nil, errors.New("no freight in tests")
}

// memHistory records Create calls in memory.
type memHistory struct {
	entries []model.CalculationHistory
}

func (m *memHistory) Create(ctx context.Context, entry *model.CalculationHistory) error {
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memHistory) List(ctx context.Context, filter repository.HistoryFilter, page, limit int) ([]model.CalculationHistory, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

func newTestCalcService(hist *memHistory) CalculationService {
	engine := tariff.NewEngine(stubGateway{}, noFreight{}, decimal.RequireFromString("1.5"))
	return NewCalculationService(engine, hist)
}

func TestCalculateFormatsResultAndWritesHistory(t *testing.T) {
	hist := &memHistory{}
	svc := newTestCalcService(hist)

	res, err := svc.Calculate(context.Background(), CalculationRequest{
		ImporterCode:    "SGP",
		HS6:             "290531",
		TradeValue:      "100.00",
		TransactionDate: "2024-01-10",
	}, "")
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if res.Duty != "5.00" {
		t.Fatalf("expected duty 5.00, got %s", res.Duty)
	}
	if res.FinalTradeValue != "105.00" {
		t.Fatalf("expected final trade value 105.00, got %s", res.FinalTradeValue)
	}
	if res.Applied.Source != "measure" || res.Applied.Rule != "AD_VALOREM" {
		t.Fatalf("unexpected applied rate: %+v", res.Applied)
	}
	if res.Warnings == nil {
		t.Fatal("warnings must never be nil in responses")
	}

	if len(hist.entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(hist.entries))
	}
	if hist.entries[0].AppliedSource != "measure" {
		t.Fatalf("history recorded wrong source: %s", hist.entries[0].AppliedSource)
	}
}

func TestCalculateRejectsMalformedFields(t *testing.T) {
	hist := &memHistory{}
	svc := newTestCalcService(hist)

	base := CalculationRequest{
		ImporterCode:    "SGP",
		HS6:             "290531",
		TradeValue:      "100.00",
		TransactionDate: "2024-01-10",
	}

	cases := []struct {
		name   string
		mutate func(*CalculationRequest)
	}{
		{"bad trade value", func(r *CalculationRequest) { r.TradeValue = "abc" }},
		{"bad date", func(r *CalculationRequest) { r.TransactionDate = "10/01/2024" }},
		{"bad weight", func(r *CalculationRequest) { r.NetWeightKg = "heavy" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)

			_, err := svc.Calculate(context.Background(), req, "")
			if !errors.Is(err, tariff.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
			if code := ErrorCode(err); code != CodeInvalidRequest {
				t.Fatalf("expected code %s, got %s", CodeInvalidRequest, code)
			}
		})
	}

	if len(hist.entries) != 0 {
		t.Fatalf("rejected requests must not write history, got %d entries", len(hist.entries))
	}
}

func TestCalculateBatchIsolatesSlots(t *testing.T) {
	hist := &memHistory{}
	svc := newTestCalcService(hist)

	slots := svc.CalculateBatch(context.Background(), BatchCalculationRequest{
		Requests: []CalculationRequest{
			{ImporterCode: "SGP", HS6: "290531", TradeValue: "100.00", TransactionDate: "2024-01-10"},
			{ImporterCode: "SGP", HS6: "290531", TradeValue: "not-a-number", TransactionDate: "2024-01-10"},
			{ImporterCode: "SGP", HS6: "999999", TradeValue: "50.00", TransactionDate: "2024-01-10"},
		},
	}, "")

	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	if slots[0].Status != "ok" || slots[0].Result == nil {
		t.Fatalf("slot 0 should succeed: %+v", slots[0])
	}
	if slots[0].Index != 0 {
		t.Fatalf("slot 0 index mismatch: %d", slots[0].Index)
	}

	if slots[1].Status != "error" || slots[1].ErrorCode != CodeInvalidRequest {
		t.Fatalf("slot 1 should fail parse with %s: %+v", CodeInvalidRequest, slots[1])
	}

	if slots[2].Status != "error" || slots[2].ErrorCode != CodeRateNotFound {
		t.Fatalf("slot 2 should fail with %s: %+v", CodeRateNotFound, slots[2])
	}

	if len(hist.entries) != 1 {
		t.Fatalf("only the successful slot should write history, got %d entries", len(hist.entries))
	}
}

func TestErrorCodeMapping(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{tariff.ErrInvalidRequest, CodeInvalidRequest, 400},
		{tariff.ErrRateNotFound, CodeRateNotFound, 404},
		{tariff.ErrWeightRequired, CodeWeightRequired, 422},
		{tariff.ErrInvalidRate, CodeInvalidRate, 500},
		{errors.New("boom"), CodeInternal, 500},
	}

	for _, tc := range cases {
		if got := ErrorCode(tc.err); got != tc.code {
			t.Errorf("ErrorCode(%v) = %s, want %s", tc.err, got, tc.code)
		}
		if got := HTTPStatus(tc.err); got != tc.status {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}
