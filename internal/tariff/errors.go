package tariff

import "errors"

// Calculation failures surfaced to callers. Each maps to a distinct status
// at the transport layer; match with errors.Is.
var (
	// ErrInvalidRequest: a mandatory field is missing/blank or out of range.
	// Raised before any gateway call.
	ErrInvalidRequest = errors.New("invalid calculation request")

	// ErrRateNotFound: no preference, suspension or measure record is valid
	// at the transaction date for the given keys.
	ErrRateNotFound = errors.New("no applicable tariff rate found")

	// ErrWeightRequired: a specific or compound measure matched but the
	// request carried no net weight.
	ErrWeightRequired = errors.New("net weight required for specific or compound rate")

	// ErrInvalidRate: a matched record carries a negative or malformed rate.
	// Data-integrity violation upstream of the engine.
	ErrInvalidRate = errors.New("tariff record contains an invalid rate")
)
