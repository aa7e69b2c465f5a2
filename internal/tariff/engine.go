package tariff

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	countryCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)
	hs6Re         = regexp.MustCompile(`^[0-9]{6}$`)
)

// Engine drives one calculation through validate → resolve → calculate →
// adjust → assemble. It holds no mutable state, so a single Engine is safe
// for arbitrarily many concurrent calculations.
type Engine struct {
	resolver *Resolver
	landed   *LandedCostAdjuster
}

func NewEngine(rates RateRecordGateway, freight FreightGateway, insuranceRatePct decimal.Decimal) *Engine {
	return &Engine{
		resolver: NewResolver(rates),
		landed:   NewLandedCostAdjuster(freight, insuranceRatePct),
	}
}

// Calculate runs a single request end to end. Failures are one of
// ErrInvalidRequest, ErrRateNotFound, ErrWeightRequired or ErrInvalidRate;
// freight problems never fail the calculation.
func (e *Engine) Calculate(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resolved, err := e.resolver.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	duty, err := ComputeDuty(resolved, req.TradeValue, req.NetWeightKg)
	if err != nil {
		return nil, err
	}

	finalValue := req.TradeValue.Add(duty.Duty).Round(2)

	result := &Result{
		Date:            req.Date,
		TradeValue:      req.TradeValue,
		Duty:            duty.Duty,
		FinalTradeValue: finalValue,
		Applied:         duty.Applied,
		Warnings:        duty.Warnings,
		BasisDeclared:   BasisFOB,
		BasisApplied:    BasisFOB,
		TotalLandedCost: finalValue,
	}

	if req.IncludeFreight {
		result.BasisDeclared = BasisCIF
		outcome := e.landed.Adjust(ctx, req, finalValue)
		result.BasisApplied = outcome.BasisApplied
		if outcome.Quoted {
			result.Freight = &FreightBreakdown{
				Cost:          outcome.Quote.Cost,
				MinCost:       outcome.Quote.MinCost,
				MaxCost:       outcome.Quote.MaxCost,
				TransitDays:   outcome.Quote.TransitDays,
				InsuranceCost: outcome.InsuranceCost,
			}
			result.TotalLandedCost = finalValue.Add(outcome.Quote.Cost).Add(outcome.InsuranceCost).Round(2)
		} else {
			result.Warnings = append(result.Warnings, outcome.Warning)
		}
	}

	return result, nil
}

// BatchItem is one slot of a batch response; Result and Err are mutually
// exclusive and the slice order matches the request order.
type BatchItem struct {
	Result *Result
	Err    error
}

// CalculateBatch processes the requests independently and in parallel.
// One request's terminal failure never affects its siblings.
func (e *Engine) CalculateBatch(ctx context.Context, reqs []Request) []BatchItem {
	items := make([]BatchItem, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			res, err := e.Calculate(ctx, req)
			items[i] = BatchItem{Result: res, Err: err}
		}(i, req)
	}
	wg.Wait()

	return items
}

func validateRequest(req Request) error {
	var problems []string

	if strings.TrimSpace(req.ImporterCode) == "" {
		problems = append(problems, "importer code is required")
	} else if !countryCodeRe.MatchString(req.ImporterCode) {
		problems = append(problems, "importer code must be a 3-letter country code")
	}

	if req.ExporterCode != "" && !countryCodeRe.MatchString(req.ExporterCode) {
		problems = append(problems, "exporter code must be a 3-letter country code")
	}

	if strings.TrimSpace(req.HS6) == "" {
		problems = append(problems, "hs6 product code is required")
	} else if !hs6Re.MatchString(req.HS6) {
		problems = append(problems, "hs6 product code must be exactly 6 digits")
	}

	if !req.TradeValue.IsPositive() {
		problems = append(problems, "trade value must be positive")
	} else if req.TradeValue.Exponent() < -2 {
		problems = append(problems, "trade value must have at most 2 decimal places")
	}

	if req.Date.IsZero() {
		problems = append(problems, "transaction date is required")
	}

	if req.NetWeightKg != nil && !req.NetWeightKg.IsPositive() {
		problems = append(problems, "net weight must be positive when supplied")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, "; "))
	}
	return nil
}
