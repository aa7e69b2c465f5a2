package tariff

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies which record family supplied the applied rate
type RateSource string

const (
	SourcePreference RateSource = "preference"
	SourceSuspension RateSource = "suspension"
	SourceMeasure    RateSource = "measure"
)

// DutyRule identifies the arithmetic applied to compute the duty
type DutyRule string

const (
	RuleAdValorem DutyRule = "AD_VALOREM"
	RuleSpecific  DutyRule = "SPECIFIC"
	RuleCompound  DutyRule = "COMPOUND"
)

// ValuationBasis constants — CIF includes freight+insurance, FOB excludes them
const (
	BasisCIF = "CIF"
	BasisFOB = "FOB"
)

// PreferenceRecord is a bilateral negotiated ad-valorem rate between an
// importer and an exporter for one HS6 product. Overrides everything else.
type PreferenceRecord struct {
	ImporterCode string
	ExporterCode string
	HS6          string
	ValidFrom    time.Time
	ValidTo      *time.Time // nil = open-ended
	RatePct      decimal.Decimal
}

// SuspensionRecord is a temporary government override of the standard rate.
// Only records with Active set are eligible for resolution.
type SuspensionRecord struct {
	ImporterCode string
	HS6          string
	ValidFrom    time.Time
	ValidTo      *time.Time
	Active       bool
	Note         string
	RatePct      decimal.Decimal
}

// MeasureRecord is the standing MFN rate: ad valorem, specific (per kg),
// or both when Compound is set. At least one rate field must be present.
type MeasureRecord struct {
	ImporterCode  string
	HS6           string
	ValidFrom     time.Time
	ValidTo       *time.Time
	AdValoremPct  *decimal.Decimal
	SpecificPerKg *decimal.Decimal
	Compound      bool
}

// ResolvedRate is a tagged union over the three record families.
// Exactly one of the pointers matching Source is non-nil.
type ResolvedRate struct {
	Source     RateSource
	Preference *PreferenceRecord
	Suspension *SuspensionRecord
	Measure    *MeasureRecord
}

// Request carries everything needed for one duty calculation.
// ImporterCode, HS6, TradeValue and Date are mandatory.
type Request struct {
	ImporterCode   string
	ExporterCode   string // optional; enables the preference lookup
	HS6            string
	TradeValue     decimal.Decimal
	Date           time.Time
	NetWeightKg    *decimal.Decimal // optional; required for specific/compound measures
	IncludeFreight bool
	TransportMode  string
}

// AppliedRate documents which rate was used and its numeric content,
// so callers can explain the outcome without re-querying record stores.
type AppliedRate struct {
	Source        RateSource
	Rule          DutyRule
	RatePct       *decimal.Decimal // preference/suspension/ad-valorem component
	SpecificPerKg *decimal.Decimal // specific component, if any
	Compound      bool
	Note          string // suspension explanatory note, empty otherwise
}

// FreightBreakdown is present on a Result only when freight was requested
// and the quote succeeded.
type FreightBreakdown struct {
	Cost          decimal.Decimal
	MinCost       decimal.Decimal
	MaxCost       decimal.Decimal
	TransitDays   int
	InsuranceCost decimal.Decimal
}

// Result is the outcome of a successful calculation.
type Result struct {
	Date            time.Time
	TradeValue      decimal.Decimal
	Duty            decimal.Decimal
	FinalTradeValue decimal.Decimal // TradeValue + Duty, 2 dp
	Applied         AppliedRate
	Warnings        []string

	// Landed-cost fields. BasisDeclared is what the caller asked for,
	// BasisApplied is what was actually possible (FOB on freight failure).
	BasisDeclared   string
	BasisApplied    string
	Freight         *FreightBreakdown
	TotalLandedCost decimal.Decimal
}
