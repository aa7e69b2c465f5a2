package tariff

import (
	"context"
	"errors"
	"testing"
	"time"
)

func baseRequest() Request {
	return Request{
		ImporterCode: "SGP",
		ExporterCode: "MYS",
		HS6:          "290531",
		TradeValue:   dec("100.00"),
		Date:         date(2024, time.January, 10),
	}
}

func TestResolve_PreferenceWinsOverEverything(t *testing.T) {
	gw := &memGateway{
		preferences: []PreferenceRecord{{
			ImporterCode: "SGP", ExporterCode: "MYS", HS6: "290531",
			ValidFrom: date(2024, time.January, 1), ValidTo: timePtr(date(2024, time.December, 31)),
			RatePct: dec("10"),
		}},
		suspensions: []SuspensionRecord{{
			ImporterCode: "SGP", HS6: "290531", Active: true,
			ValidFrom: date(2024, time.January, 1), RatePct: dec("0"),
		}},
		measures: []MeasureRecord{{
			ImporterCode: "SGP", HS6: "290531",
			ValidFrom: date(2020, time.January, 1), AdValoremPct: decPtr("7.5"),
		}},
	}

	resolved, err := NewResolver(gw).Resolve(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Source != SourcePreference || resolved.Preference == nil {
		t.Fatalf("resolved = %+v, want preference", resolved)
	}
}

func TestResolve_SuspensionBeatsMeasure(t *testing.T) {
	gw := &memGateway{
		suspensions: []SuspensionRecord{{
			ImporterCode: "SGP", HS6: "290531", Active: true,
			ValidFrom: date(2024, time.January, 1), RatePct: dec("0"), Note: "temporary suspension",
		}},
		measures: []MeasureRecord{{
			ImporterCode: "SGP", HS6: "290531",
			ValidFrom: date(2020, time.January, 1), AdValoremPct: decPtr("7.5"),
		}},
	}

	req := baseRequest()
	req.ExporterCode = "" // no preference lookup without an exporter

	resolved, err := NewResolver(gw).Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Source != SourceSuspension {
		t.Fatalf("source = %s, want suspension", resolved.Source)
	}
}

func TestResolve_InactiveSuspensionIsSkipped(t *testing.T) {
	gw := &memGateway{
		suspensions: []SuspensionRecord{{
			ImporterCode: "SGP", HS6: "290531", Active: false,
			ValidFrom: date(2024, time.January, 1), RatePct: dec("0"),
		}},
		measures: []MeasureRecord{{
			ImporterCode: "SGP", HS6: "290531",
			ValidFrom: date(2020, time.January, 1), AdValoremPct: decPtr("7.5"),
		}},
	}

	resolved, err := NewResolver(gw).Resolve(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Source != SourceMeasure {
		t.Fatalf("source = %s, want measure", resolved.Source)
	}
}

func TestResolve_NothingMatches(t *testing.T) {
	_, err := NewResolver(&memGateway{}).Resolve(context.Background(), baseRequest())
	if !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("err = %v, want ErrRateNotFound", err)
	}
}

func TestResolve_GatewayErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := NewResolver(&memGateway{err: boom}).Resolve(context.Background(), baseRequest())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped gateway error", err)
	}
}

func TestValidityWindow_SingleDayRecord(t *testing.T) {
	d := date(2024, time.June, 15)
	gw := &memGateway{
		measures: []MeasureRecord{{
			ImporterCode: "SGP", HS6: "290531",
			ValidFrom: d, ValidTo: timePtr(d), AdValoremPct: decPtr("7.5"),
		}},
	}
	resolver := NewResolver(gw)

	req := baseRequest()
	req.ExporterCode = ""

	req.Date = d
	if _, err := resolver.Resolve(context.Background(), req); err != nil {
		t.Fatalf("record should apply at exactly its window day: %v", err)
	}

	req.Date = d.AddDate(0, 0, -1)
	if _, err := resolver.Resolve(context.Background(), req); !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("record must not apply the day before: %v", err)
	}

	req.Date = d.AddDate(0, 0, 1)
	if _, err := resolver.Resolve(context.Background(), req); !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("record must not apply the day after: %v", err)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
