package tariff

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// memGateway is an in-memory RateRecordGateway for tests. It applies the
// same validity-window predicate the SQL adapters run server-side.
type memGateway struct {
	preferences []PreferenceRecord
	suspensions []SuspensionRecord
	measures    []MeasureRecord
	err         error // returned from every lookup when set
}

func withinWindow(from time.Time, to *time.Time, d time.Time) bool {
	if d.Before(from) {
		return false
	}
	return to == nil || !to.Before(d)
}

func (g *memGateway) FindPreference(_ context.Context, importer, exporter, hs6 string, date time.Time) (*PreferenceRecord, error) {
	if g.err != nil {
		return nil, g.err
	}
	for i := range g.preferences {
		p := g.preferences[i]
		if p.ImporterCode == importer && p.ExporterCode == exporter && p.HS6 == hs6 && withinWindow(p.ValidFrom, p.ValidTo, date) {
			return &p, nil
		}
	}
	return nil, nil
}

func (g *memGateway) FindActiveSuspension(_ context.Context, importer, hs6 string, date time.Time) (*SuspensionRecord, error) {
	if g.err != nil {
		return nil, g.err
	}
	for i := range g.suspensions {
		s := g.suspensions[i]
		if s.ImporterCode == importer && s.HS6 == hs6 && s.Active && withinWindow(s.ValidFrom, s.ValidTo, date) {
			return &s, nil
		}
	}
	return nil, nil
}

func (g *memGateway) FindMeasure(_ context.Context, importer, hs6 string, date time.Time) (*MeasureRecord, error) {
	if g.err != nil {
		return nil, g.err
	}
	for i := range g.measures {
		m := g.measures[i]
		if m.ImporterCode == importer && m.HS6 == hs6 && withinWindow(m.ValidFrom, m.ValidTo, date) {
			return &m, nil
		}
	}
	return nil, nil
}

// freightFunc adapts a function to the FreightGateway interface.
type freightFunc func(ctx context.Context, mode, origin, dest string, weightKg decimal.Decimal) (*FreightQuote, error)

func (f freightFunc) Quote(ctx context.Context, mode, origin, dest string, weightKg decimal.Decimal) (*FreightQuote, error) {
	return f(ctx, mode, origin, dest, weightKg)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
