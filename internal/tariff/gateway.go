package tariff

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateRecordGateway is the read-only view of the three rate-record stores.
// Implementations must apply the validity-window predicate
// (valid_from <= date AND (valid_to IS NULL OR valid_to >= date)) themselves;
// the engine does not re-filter. A (nil, nil) return means "no record".
type RateRecordGateway interface {
	FindPreference(ctx context.Context, importer, exporter, hs6 string, date time.Time) (*PreferenceRecord, error)
	FindActiveSuspension(ctx context.Context, importer, hs6 string, date time.Time) (*SuspensionRecord, error)
	FindMeasure(ctx context.Context, importer, hs6 string, date time.Time) (*MeasureRecord, error)
}

// FreightQuote is a point estimate with a min/max band and a transit estimate.
type FreightQuote struct {
	Cost        decimal.Decimal
	MinCost     decimal.Decimal
	MaxCost     decimal.Decimal
	TransitDays int
}

// FreightGateway quotes freight for a shipment. Network-backed and treated
// as unreliable: the engine absorbs every error (timeouts and cancellation
// included) into the FOB fallback rather than failing the calculation.
type FreightGateway interface {
	Quote(ctx context.Context, mode, originCountry, destCountry string, weightKg decimal.Decimal) (*FreightQuote, error)
}
