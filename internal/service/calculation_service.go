package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/repository"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/tariff"
)

// --- DTOs ---

type CalculationRequest struct {
	ImporterCode    string `json:"importer_code" binding:"required"`
	ExporterCode    string `json:"exporter_code"`
	HS6             string `json:"hs6" binding:"required"`
	TradeValue      string `json:"trade_value" binding:"required"`       // decimal string, e.g. "100.00"
	TransactionDate string `json:"transaction_date" binding:"required"`  // YYYY-MM-DD
	NetWeightKg     string `json:"net_weight_kg"`                        // optional decimal string
	IncludeFreight  bool   `json:"include_freight"`
	TransportMode   string `json:"transport_mode"` // AIR, SEA, ROAD, RAIL
}

type BatchCalculationRequest struct {
	Requests []CalculationRequest `json:"requests" binding:"required,min=1,dive"`
}

type AppliedRateResponse struct {
	Source        string  `json:"source"` // preference, suspension, measure
	Rule          string  `json:"rule"`   // AD_VALOREM, SPECIFIC, COMPOUND
	RatePct       *string `json:"rate_pct,omitempty"`
	SpecificPerKg *string `json:"specific_per_kg,omitempty"`
	Compound      bool    `json:"compound,omitempty"`
	Note          string  `json:"note,omitempty"`
}

type FreightResponse struct {
	Cost          string `json:"cost"`
	MinCost       string `json:"min_cost"`
	MaxCost       string `json:"max_cost"`
	TransitDays   int    `json:"transit_days"`
	InsuranceCost string `json:"insurance_cost"`
}

type CalculationResponse struct {
	TransactionDate        string              `json:"transaction_date"`
	TradeValue             string              `json:"trade_value"`
	Duty                   string              `json:"duty"`
	FinalTradeValue        string              `json:"final_trade_value"`
	Applied                AppliedRateResponse `json:"applied_rate"`
	Warnings               []string            `json:"warnings"`
	ValuationBasisDeclared string              `json:"valuation_basis_declared"`
	ValuationBasisApplied  string              `json:"valuation_basis_applied"`
	Freight                *FreightResponse    `json:"freight,omitempty"`
	TotalLandedCost        string              `json:"total_landed_cost"`
}

// BatchSlot is one position of a batch response. Status is "ok" or "error";
// slot order matches the submitted request order.
type BatchSlot struct {
	Index     int                  `json:"index"`
	Status    string               `json:"status"`
	Result    *CalculationResponse `json:"result,omitempty"`
	ErrorCode string               `json:"error_code,omitempty"`
	Error     string               `json:"error,omitempty"`
}

type HistoryResponse struct {
	ID              string   `json:"id"`
	ImporterCode    string   `json:"importer_code"`
	ExporterCode    string   `json:"exporter_code,omitempty"`
	HS6             string   `json:"hs6"`
	TransactionDate string   `json:"transaction_date"`
	TradeValue      string   `json:"trade_value"`
	Duty            string   `json:"duty"`
	FinalTradeValue string   `json:"final_trade_value"`
	AppliedSource   string   `json:"applied_source"`
	DutyRule        string   `json:"duty_rule"`
	ValuationBasis  string   `json:"valuation_basis"`
	TotalLandedCost string   `json:"total_landed_cost"`
	Warnings        []string `json:"warnings"`
	CreatedAt       string   `json:"created_at"`
}

// --- Interface ---

type CalculationService interface {
	Calculate(ctx context.Context, req CalculationRequest, userID string) (CalculationResponse, error)
	CalculateBatch(ctx context.Context, req BatchCalculationRequest, userID string) []BatchSlot
	ListHistory(ctx context.Context, filter repository.HistoryFilter, page, limit int) ([]HistoryResponse, int64, error)
}

type calculationService struct {
	engine      *tariff.Engine
	historyRepo repository.HistoryRepository
}

func NewCalculationService(engine *tariff.Engine, historyRepo repository.HistoryRepository) CalculationService {
	return &calculationService{engine: engine, historyRepo: historyRepo}
}

// --- Implementation ---

func (s *calculationService) Calculate(ctx context.Context, req CalculationRequest, userID string) (CalculationResponse, error) {
	engineReq, err := toEngineRequest(req)
	if err != nil {
		return CalculationResponse{}, err
	}

	result, err := s.engine.Calculate(ctx, engineReq)
	if err != nil {
		return CalculationResponse{}, err
	}

	s.writeHistory(ctx, userID, engineReq, result)

	return toCalculationResponse(result), nil
}

func (s *calculationService) CalculateBatch(ctx context.Context, req BatchCalculationRequest, userID string) []BatchSlot {
	engineReqs := make([]tariff.Request, len(req.Requests))
	slots := make([]BatchSlot, len(req.Requests))
	parseFailed := make([]bool, len(req.Requests))

	for i, r := range req.Requests {
		engineReq, err := toEngineRequest(r)
		if err != nil {
			slots[i] = errorSlot(i, err)
			parseFailed[i] = true
			continue
		}
		engineReqs[i] = engineReq
	}

	items := s.engine.CalculateBatch(ctx, engineReqs)
	for i, item := range items {
		if parseFailed[i] {
			continue // slot already holds the parse failure
		}
		if item.Err != nil {
			slots[i] = errorSlot(i, item.Err)
			continue
		}
		s.writeHistory(ctx, userID, engineReqs[i], item.Result)
		resp := toCalculationResponse(item.Result)
		slots[i] = BatchSlot{Index: i, Status: "ok", Result: &resp}
	}

	return slots
}

func (s *calculationService) ListHistory(ctx context.Context, filter repository.HistoryFilter, page, limit int) ([]HistoryResponse, int64, error) {
	entries, total, err := s.historyRepo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch calculation history: %w", err)
	}

	res := make([]HistoryResponse, 0, len(entries))
	for _, e := range entries {
		var warnings []string
		_ = json.Unmarshal([]byte(e.Warnings), &warnings)

		exporter := e.ExporterCode
		res = append(res, HistoryResponse{
			ID:              e.ID.String(),
			ImporterCode:    e.ImporterCode,
			ExporterCode:    exporter,
			HS6:             e.HS6,
			TransactionDate: e.TransactionDate.Format("2006-01-02"),
			TradeValue:      e.TradeValue.StringFixed(2),
			Duty:            e.Duty.StringFixed(2),
			FinalTradeValue: e.FinalTradeValue.StringFixed(2),
			AppliedSource:   e.AppliedSource,
			DutyRule:        e.DutyRule,
			ValuationBasis:  e.ValuationBasis,
			TotalLandedCost: e.TotalLandedCost.StringFixed(2),
			Warnings:        warnings,
			CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		})
	}

	return res, total, nil
}

// --- Helpers ---

func toEngineRequest(req CalculationRequest) (tariff.Request, error) {
	tradeValue, err := decimal.NewFromString(req.TradeValue)
	if err != nil {
		return tariff.Request{}, fmt.Errorf("%w: invalid trade value %q", tariff.ErrInvalidRequest, req.TradeValue)
	}

	txDate, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		return tariff.Request{}, fmt.Errorf("%w: invalid transaction date %q (expected YYYY-MM-DD)", tariff.ErrInvalidRequest, req.TransactionDate)
	}

	var netWeight *decimal.Decimal
	if req.NetWeightKg != "" {
		w, err := decimal.NewFromString(req.NetWeightKg)
		if err != nil {
			return tariff.Request{}, fmt.Errorf("%w: invalid net weight %q", tariff.ErrInvalidRequest, req.NetWeightKg)
		}
		netWeight = &w
	}

	return tariff.Request{
		ImporterCode:   req.ImporterCode,
		ExporterCode:   req.ExporterCode,
		HS6:            req.HS6,
		TradeValue:     tradeValue,
		Date:           txDate,
		NetWeightKg:    netWeight,
		IncludeFreight: req.IncludeFreight,
		TransportMode:  req.TransportMode,
	}, nil
}

func toCalculationResponse(result *tariff.Result) CalculationResponse {
	applied := AppliedRateResponse{
		Source:   string(result.Applied.Source),
		Rule:     string(result.Applied.Rule),
		Compound: result.Applied.Compound,
		Note:     result.Applied.Note,
	}
	if result.Applied.RatePct != nil {
		s := result.Applied.RatePct.StringFixed(4)
		applied.RatePct = &s
	}
	if result.Applied.SpecificPerKg != nil {
		s := result.Applied.SpecificPerKg.StringFixed(4)
		applied.SpecificPerKg = &s
	}

	resp := CalculationResponse{
		TransactionDate:        result.Date.Format("2006-01-02"),
		TradeValue:             result.TradeValue.StringFixed(2),
		Duty:                   result.Duty.StringFixed(2),
		FinalTradeValue:        result.FinalTradeValue.StringFixed(2),
		Applied:                applied,
		Warnings:               result.Warnings,
		ValuationBasisDeclared: result.BasisDeclared,
		ValuationBasisApplied:  result.BasisApplied,
		TotalLandedCost:        result.TotalLandedCost.StringFixed(2),
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	if result.Freight != nil {
		resp.Freight = &FreightResponse{
			Cost:          result.Freight.Cost.StringFixed(2),
			MinCost:       result.Freight.MinCost.StringFixed(2),
			MaxCost:       result.Freight.MaxCost.StringFixed(2),
			TransitDays:   result.Freight.TransitDays,
			InsuranceCost: result.Freight.InsuranceCost.StringFixed(2),
		}
	}
	return resp
}

func errorSlot(index int, err error) BatchSlot {
	return BatchSlot{
		Index:     index,
		Status:    "error",
		ErrorCode: ErrorCode(err),
		Error:     err.Error(),
	}
}

// writeHistory persists the calculation outcome. Best-effort: a history
// write failure never fails the calculation itself.
func (s *calculationService) writeHistory(ctx context.Context, userID string, req tariff.Request, result *tariff.Result) {
	warningsJSON, _ := json.Marshal(result.Warnings)

	entry := model.CalculationHistory{
		ImporterCode:    req.ImporterCode,
		ExporterCode:    req.ExporterCode,
		HS6:             req.HS6,
		TransactionDate: req.Date,
		TradeValue:      result.TradeValue,
		Duty:            result.Duty,
		FinalTradeValue: result.FinalTradeValue,
		AppliedSource:   string(result.Applied.Source),
		DutyRule:        string(result.Applied.Rule),
		ValuationBasis:  result.BasisApplied,
		TotalLandedCost: result.TotalLandedCost,
		Warnings:        string(warningsJSON),
	}

	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			entry.UserID = &parsed
		}
	}

	_ = s.historyRepo.Create(ctx, &entry)
}
