package tariff

import (
	"context"
	"fmt"
)

// Resolver selects exactly one applicable rate record for a request.
//
// Priority, first match wins:
//  1. PreferenceRecord (importer, exporter, product) — bilateral agreements
//     override everything, only queried when an exporter code is present.
//  2. Active SuspensionRecord (importer, product) — temporary override of
//     the standing rate.
//  3. MeasureRecord (importer, product) — the always-on MFN fallback.
type Resolver struct {
	rates RateRecordGateway
}

func NewResolver(rates RateRecordGateway) *Resolver {
	return &Resolver{rates: rates}
}

// Resolve returns the winning record or ErrRateNotFound when the chain is
// exhausted. Gateway errors (including context cancellation) propagate as-is.
func (r *Resolver) Resolve(ctx context.Context, req Request) (ResolvedRate, error) {
	if req.ExporterCode != "" {
		pref, err := r.rates.FindPreference(ctx, req.ImporterCode, req.ExporterCode, req.HS6, req.Date)
		if err != nil {
			return ResolvedRate{}, fmt.Errorf("preference lookup: %w", err)
		}
		if pref != nil {
			return ResolvedRate{Source: SourcePreference, Preference: pref}, nil
		}
	}

	susp, err := r.rates.FindActiveSuspension(ctx, req.ImporterCode, req.HS6, req.Date)
	if err != nil {
		return ResolvedRate{}, fmt.Errorf("suspension lookup: %w", err)
	}
	if susp != nil {
		return ResolvedRate{Source: SourceSuspension, Suspension: susp}, nil
	}

	measure, err := r.rates.FindMeasure(ctx, req.ImporterCode, req.HS6, req.Date)
	if err != nil {
		return ResolvedRate{}, fmt.Errorf("measure lookup: %w", err)
	}
	if measure != nil {
		return ResolvedRate{Source: SourceMeasure, Measure: measure}, nil
	}

	return ResolvedRate{}, fmt.Errorf("%w: importer=%s hs6=%s date=%s",
		ErrRateNotFound, req.ImporterCode, req.HS6, req.Date.Format("2006-01-02"))
}
