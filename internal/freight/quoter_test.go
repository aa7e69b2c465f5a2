package freight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStaticQuoter_SeaCrossBorder(t *testing.T) {
	q := NewStaticQuoter()
	quote, err := q.Quote(context.Background(), "sea", "MYS", "SGP", decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 40 + 100*0.90 + 15 cross-border = 145.00
	if quote.Cost.String() != "145" && quote.Cost.String() != "145.00" {
		t.Fatalf("cost = %s, want 145.00", quote.Cost)
	}
	if quote.MinCost.GreaterThanOrEqual(quote.Cost) || quote.MaxCost.LessThanOrEqual(quote.Cost) {
		t.Fatalf("band [%s, %s] does not bracket %s", quote.MinCost, quote.MaxCost, quote.Cost)
	}
	if quote.TransitDays != 28 {
		t.Fatalf("transit days = %d, want 28", quote.TransitDays)
	}
}

func TestStaticQuoter_DomesticNoSurcharge(t *testing.T) {
	q := NewStaticQuoter()
	quote, err := q.Quote(context.Background(), "ROAD", "SGP", "SGP", decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 25 + 10*1.60 = 41.00
	if !quote.Cost.Equal(decimal.RequireFromString("41")) {
		t.Fatalf("cost = %s, want 41.00", quote.Cost)
	}
}

func TestStaticQuoter_Rejections(t *testing.T) {
	q := NewStaticQuoter()
	if _, err := q.Quote(context.Background(), "TELEPORT", "MYS", "SGP", decimal.NewFromInt(5)); err == nil {
		t.Fatal("unknown mode should be rejected")
	}
	if _, err := q.Quote(context.Background(), "AIR", "MYS", "SGP", decimal.Zero); err == nil {
		t.Fatal("zero weight should be rejected")
	}
}

func TestHTTPQuoter_ParsesQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quotes" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cost":"120.50","min_cost":"102.43","max_cost":"138.58","transit_days":5}`))
	}))
	defer srv.Close()

	q := NewHTTPQuoter(srv.URL, srv.Client())
	quote, err := q.Quote(context.Background(), "AIR", "MYS", "SGP", decimal.NewFromInt(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.Cost.Equal(decimal.RequireFromString("120.50")) {
		t.Fatalf("cost = %s, want 120.50", quote.Cost)
	}
	if quote.TransitDays != 5 {
		t.Fatalf("transit days = %d, want 5", quote.TransitDays)
	}
}

func TestHTTPQuoter_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	q := NewHTTPQuoter(srv.URL, srv.Client())
	if _, err := q.Quote(context.Background(), "AIR", "MYS", "SGP", decimal.NewFromInt(20)); err == nil {
		t.Fatal("non-2xx status should be an error")
	}
}

func TestNewByName_Fallback(t *testing.T) {
	if _, ok := NewByName("", "", nil).(*StaticQuoter); !ok {
		t.Fatal("empty provider should select StaticQuoter")
	}
	if _, ok := NewByName("http", "http://freight.local", nil).(*HTTPQuoter); !ok {
		t.Fatal("'http' provider should select HTTPQuoter")
	}
	if _, ok := NewByName("bogus", "", nil).(*StaticQuoter); !ok {
		t.Fatal("unknown provider should fall back to StaticQuoter")
	}
}
