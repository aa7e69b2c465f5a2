package freight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/tariff"
)

// Supported transport modes.
const (
	ModeAir  = "AIR"
	ModeSea  = "SEA"
	ModeRoad = "ROAD"
	ModeRail = "RAIL"
)

// StaticQuoter estimates freight from a fixed per-mode tariff table:
// base charge + per-kg rate, with a surcharge for cross-border moves.
// The min/max band is ±15% of the point estimate.
type StaticQuoter struct{}

func NewStaticQuoter() *StaticQuoter { return &StaticQuoter{} }

type modeTariff struct {
	base        decimal.Decimal
	perKg       decimal.Decimal
	transitDays int
}

var modeTariffs = map[string]modeTariff{
	ModeAir:  {base: decimal.NewFromInt(80), perKg: decimal.RequireFromString("4.50"), transitDays: 3},
	ModeSea:  {base: decimal.NewFromInt(40), perKg: decimal.RequireFromString("0.90"), transitDays: 28},
	ModeRoad: {base: decimal.NewFromInt(25), perKg: decimal.RequireFromString("1.60"), transitDays: 7},
	ModeRail: {base: decimal.NewFromInt(30), perKg: decimal.RequireFromString("1.20"), transitDays: 14},
}

var (
	bandLow  = decimal.RequireFromString("0.85")
	bandHigh = decimal.RequireFromString("1.15")
)

func (q *StaticQuoter) Quote(_ context.Context, mode, originCountry, destCountry string, weightKg decimal.Decimal) (*tariff.FreightQuote, error) {
	t, ok := modeTariffs[strings.ToUpper(strings.TrimSpace(mode))]
	if !ok {
		return nil, fmt.Errorf("unsupported transport mode %q", mode)
	}
	if !weightKg.IsPositive() {
		return nil, fmt.Errorf("weight must be positive, got %s", weightKg)
	}

	cost := t.base.Add(weightKg.Mul(t.perKg))
	if !strings.EqualFold(originCountry, destCountry) {
		// Cross-border handling surcharge
		cost = cost.Add(decimal.NewFromInt(15))
	}
	cost = cost.Round(2)

	return &tariff.FreightQuote{
		Cost:        cost,
		MinCost:     cost.Mul(bandLow).Round(2),
		MaxCost:     cost.Mul(bandHigh).Round(2),
		TransitDays: t.transitDays,
	}, nil
}

// HTTPQuoter calls an external freight-quoting API. Any transport, status
// or decoding problem is returned as an error; the calculation engine
// absorbs those into its FOB fallback.
type HTTPQuoter struct {
	baseURL string
	client  *http.Client
}

func NewHTTPQuoter(baseURL string, client *http.Client) *HTTPQuoter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPQuoter{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type quoteRequest struct {
	Mode     string `json:"mode"`
	Origin   string `json:"origin"`
	Dest     string `json:"dest"`
	WeightKg string `json:"weight_kg"`
}

type quoteResponse struct {
	Cost        string `json:"cost"`
	MinCost     string `json:"min_cost"`
	MaxCost     string `json:"max_cost"`
	TransitDays int    `json:"transit_days"`
}

func (q *HTTPQuoter) Quote(ctx context.Context, mode, originCountry, destCountry string, weightKg decimal.Decimal) (*tariff.FreightQuote, error) {
	payload, err := json.Marshal(quoteRequest{
		Mode:     mode,
		Origin:   originCountry,
		Dest:     destCountry,
		WeightKg: weightKg.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode quote request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, q.baseURL+"/quotes", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := q.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("freight api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("freight api returned status %d", resp.StatusCode)
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode freight quote: %w", err)
	}

	cost, err := decimal.NewFromString(body.Cost)
	if err != nil {
		return nil, fmt.Errorf("malformed quote cost %q: %w", body.Cost, err)
	}
	minCost, err := decimal.NewFromString(body.MinCost)
	if err != nil {
		return nil, fmt.Errorf("malformed quote min_cost %q: %w", body.MinCost, err)
	}
	maxCost, err := decimal.NewFromString(body.MaxCost)
	if err != nil {
		return nil, fmt.Errorf("malformed quote max_cost %q: %w", body.MaxCost, err)
	}

	return &tariff.FreightQuote{
		Cost:        cost,
		MinCost:     minCost,
		MaxCost:     maxCost,
		TransitDays: body.TransitDays,
	}, nil
}

// NewByName returns a FreightGateway by provider name. Unknown names fall
// back to the static table so a misconfigured environment still quotes.
func NewByName(name, baseURL string, client *http.Client) tariff.FreightGateway {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "http":
		return NewHTTPQuoter(baseURL, client)
	case "static", "":
		return NewStaticQuoter()
	default:
		return NewStaticQuoter()
	}
}
