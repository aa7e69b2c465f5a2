package tariff

import (
	"context"

	"github.com/shopspring/decimal"
)

// FreightOutcome is the explicit result of the landed-cost step. Quoted is
// false whenever the freight gateway failed for any reason — the caller
// branches on it instead of handling an error, keeping the "freight failure
// is never fatal" invariant visible in the types.
type FreightOutcome struct {
	Quoted        bool
	Quote         *FreightQuote
	InsuranceCost decimal.Decimal
	BasisApplied  string // CIF when quoted, FOB otherwise
	Warning       string // set only on fallback
}

// LandedCostAdjuster extends a duty-inclusive trade value with freight and
// insurance. The insurance premium is a configured percentage of the
// freight-inclusive value; the rate is deliberately injected rather than
// hard-coded.
type LandedCostAdjuster struct {
	freight          FreightGateway
	insuranceRatePct decimal.Decimal
}

func NewLandedCostAdjuster(freight FreightGateway, insuranceRatePct decimal.Decimal) *LandedCostAdjuster {
	return &LandedCostAdjuster{freight: freight, insuranceRatePct: insuranceRatePct}
}

// Adjust quotes freight for the request and computes the insurance premium.
// It never fails: an unreachable gateway, a malformed quote or a cancelled
// context all degrade to the FOB basis with a warning. Availability of the
// duty figure always wins over completeness of the landed cost.
func (a *LandedCostAdjuster) Adjust(ctx context.Context, req Request, finalTradeValue decimal.Decimal) FreightOutcome {
	weight := decimal.Zero
	if req.NetWeightKg != nil {
		weight = *req.NetWeightKg
	}

	quote, err := a.freight.Quote(ctx, req.TransportMode, req.ExporterCode, req.ImporterCode, weight)
	if err != nil || quote == nil {
		return FreightOutcome{
			Quoted:       false,
			BasisApplied: BasisFOB,
			Warning:      "freight quote unavailable; valuation degraded to FOB basis",
		}
	}

	insured := finalTradeValue.Add(quote.Cost)
	insurance := insured.Mul(a.insuranceRatePct.Div(oneHundred)).Round(2)

	return FreightOutcome{
		Quoted:        true,
		Quote:         quote,
		InsuranceCost: insurance,
		BasisApplied:  BasisCIF,
	}
}
