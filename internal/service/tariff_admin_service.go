package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/repository"
	ws "github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/websocket"
)

// --- DTOs ---

type PreferenceRequest struct {
	ImporterCode string `json:"importer_code" binding:"required,len=3"`
	ExporterCode string `json:"exporter_code" binding:"required,len=3"`
	HS6          string `json:"hs6" binding:"required,len=6"`
	RatePct      string `json:"rate_pct" binding:"required"`   // e.g. "10" = 10%
	ValidFrom    string `json:"valid_from" binding:"required"` // YYYY-MM-DD
	ValidTo      string `json:"valid_to"`                      // YYYY-MM-DD, empty = open-ended
}

type PreferenceResponse struct {
	ID           string  `json:"id"`
	ImporterCode string  `json:"importer_code"`
	ExporterCode string  `json:"exporter_code"`
	HS6          string  `json:"hs6"`
	RatePct      string  `json:"rate_pct"`
	ValidFrom    string  `json:"valid_from"`
	ValidTo      *string `json:"valid_to"`
	CreatedAt    string  `json:"created_at"`
}

type SuspensionRequest struct {
	ImporterCode string `json:"importer_code" binding:"required,len=3"`
	HS6          string `json:"hs6" binding:"required,len=6"`
	RatePct      string `json:"rate_pct" binding:"required"`
	IsActive     *bool  `json:"is_active"` // defaults to true
	Note         string `json:"note" binding:"required"`
	ValidFrom    string `json:"valid_from" binding:"required"`
	ValidTo      string `json:"valid_to"`
}

type SuspensionResponse struct {
	ID           string  `json:"id"`
	ImporterCode string  `json:"importer_code"`
	HS6          string  `json:"hs6"`
	RatePct      string  `json:"rate_pct"`
	IsActive     bool    `json:"is_active"`
	Note         string  `json:"note"`
	ValidFrom    string  `json:"valid_from"`
	ValidTo      *string `json:"valid_to"`
	CreatedAt    string  `json:"created_at"`
}

type MeasureRequest struct {
	ImporterCode  string `json:"importer_code" binding:"required,len=3"`
	HS6           string `json:"hs6" binding:"required,len=6"`
	AdValoremPct  string `json:"ad_valorem_pct"`  // optional decimal string
	SpecificPerKg string `json:"specific_per_kg"` // optional decimal string
	IsCompound    bool   `json:"is_compound"`
	ValidFrom     string `json:"valid_from" binding:"required"`
	ValidTo       string `json:"valid_to"`
}

type MeasureResponse struct {
	ID            string  `json:"id"`
	ImporterCode  string  `json:"importer_code"`
	HS6           string  `json:"hs6"`
	AdValoremPct  *string `json:"ad_valorem_pct"`
	SpecificPerKg *string `json:"specific_per_kg"`
	IsCompound    bool    `json:"is_compound"`
	ValidFrom     string  `json:"valid_from"`
	ValidTo       *string `json:"valid_to"`
	CreatedAt     string  `json:"created_at"`
}

// RateChangeEvent is pushed to websocket subscribers whenever a rate record
// changes, so open dashboards can refresh without polling.
type RateChangeEvent struct {
	Event  string `json:"event"` // e.g. tariff.preference.created
	Family string `json:"family"`
	ID     string `json:"id"`
	HS6    string `json:"hs6"`
}

// --- Interface ---

type TariffAdminService interface {
	CreatePreference(ctx context.Context, req PreferenceRequest, userID string) (PreferenceResponse, error)
	UpdatePreference(ctx context.Context, id string, req PreferenceRequest, userID string) (PreferenceResponse, error)
	DeletePreference(ctx context.Context, id string, userID string) error
	ListPreferences(ctx context.Context, page, limit int) ([]PreferenceResponse, int64, error)

	CreateSuspension(ctx context.Context, req SuspensionRequest, userID string) (SuspensionResponse, error)
	UpdateSuspension(ctx context.Context, id string, req SuspensionRequest, userID string) (SuspensionResponse, error)
	DeleteSuspension(ctx context.Context, id string, userID string) error
	ListSuspensions(ctx context.Context, page, limit int) ([]SuspensionResponse, int64, error)

	CreateMeasure(ctx context.Context, req MeasureRequest, userID string) (MeasureResponse, error)
	UpdateMeasure(ctx context.Context, id string, req MeasureRequest, userID string) (MeasureResponse, error)
	DeleteMeasure(ctx context.Context, id string, userID string) error
	ListMeasures(ctx context.Context, page, limit int) ([]MeasureResponse, int64, error)
}

type tariffAdminService struct {
	repo repository.TariffRateRepository
	db   *gorm.DB // audit log writes
	hub  *ws.Hub
}

func NewTariffAdminService(repo repository.TariffRateRepository, db *gorm.DB, hub *ws.Hub) TariffAdminService {
	return &tariffAdminService{repo: repo, db: db, hub: hub}
}

// --- Preferences ---

func (s *tariffAdminService) CreatePreference(ctx context.Context, req PreferenceRequest, userID string) (PreferenceResponse, error) {
	rate, from, to, err := parseRateWindow(req.RatePct, req.ValidFrom, req.ValidTo)
	if err != nil {
		return PreferenceResponse{}, err
	}

	count, err := s.repo.CountOverlappingPreferences(ctx, req.ImporterCode, req.ExporterCode, req.HS6, from, to, nil)
	if err != nil {
		return PreferenceResponse{}, fmt.Errorf("failed to check overlap: %w", err)
	}
	if count > 0 {
		return PreferenceResponse{}, fmt.Errorf("a preference for %s/%s/%s already exists with overlapping validity dates", req.ImporterCode, req.ExporterCode, req.HS6)
	}

	rec := model.TariffPreference{
		ImporterCode: req.ImporterCode,
		ExporterCode: req.ExporterCode,
		HS6:          req.HS6,
		RatePct:      rate,
		ValidFrom:    from,
		ValidTo:      to,
	}
	if err := s.repo.CreatePreference(ctx, &rec); err != nil {
		return PreferenceResponse{}, fmt.Errorf("failed to create preference: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionCreatePreference, rec.ID.String(), prefEntityName(rec), req)
	s.broadcast("tariff.preference.created", "preference", rec.ID.String(), rec.HS6)

	return toPreferenceResponse(rec), nil
}

func (s *tariffAdminService) UpdatePreference(ctx context.Context, id string, req PreferenceRequest, userID string) (PreferenceResponse, error) {
	recID, err := uuid.Parse(id)
	if err != nil {
		return PreferenceResponse{}, fmt.Errorf("invalid preference id: %w", err)
	}

	rec, err := s.repo.FindPreferenceByID(ctx, recID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PreferenceResponse{}, fmt.Errorf("preference not found")
		}
		return PreferenceResponse{}, fmt.Errorf("failed to fetch preference: %w", err)
	}

	rate, from, to, err := parseRateWindow(req.RatePct, req.ValidFrom, req.ValidTo)
	if err != nil {
		return PreferenceResponse{}, err
	}

	count, err := s.repo.CountOverlappingPreferences(ctx, req.ImporterCode, req.ExporterCode, req.HS6, from, to, &recID)
	if err != nil {
		return PreferenceResponse{}, fmt.Errorf("failed to check overlap: %w", err)
	}
	if count > 0 {
		return PreferenceResponse{}, fmt.Errorf("a preference for %s/%s/%s already exists with overlapping validity dates", req.ImporterCode, req.ExporterCode, req.HS6)
	}

	rec.ImporterCode = req.ImporterCode
	rec.ExporterCode = req.ExporterCode
	rec.HS6 = req.HS6
	rec.RatePct = rate
	rec.ValidFrom = from
	rec.ValidTo = to

	if err := s.repo.UpdatePreference(ctx, rec); err != nil {
		return PreferenceResponse{}, fmt.Errorf("failed to update preference: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionUpdatePreference, rec.ID.String(), prefEntityName(*rec), req)
	s.broadcast("tariff.preference.updated", "preference", rec.ID.String(), rec.HS6)

	return toPreferenceResponse(*rec), nil
}

func (s *tariffAdminService) DeletePreference(ctx context.Context, id string, userID string) error {
	recID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid preference id: %w", err)
	}

	rec, err := s.repo.FindPreferenceByID(ctx, recID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("preference not found")
		}
		return fmt.Errorf("failed to fetch preference: %w", err)
	}

	if err := s.repo.DeletePreference(ctx, recID); err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionDeletePreference, id, prefEntityName(*rec), map[string]string{"deleted_id": id})
	s.broadcast("tariff.preference.deleted", "preference", id, rec.HS6)

	return nil
}

func (s *tariffAdminService) ListPreferences(ctx context.Context, page, limit int) ([]PreferenceResponse, int64, error) {
	recs, total, err := s.repo.ListPreferences(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch preferences: %w", err)
	}

	res := make([]PreferenceResponse, 0, len(recs))
	for _, r := range recs {
		res = append(res, toPreferenceResponse(r))
	}
	return res, total, nil
}

// --- Suspensions ---

func (s *tariffAdminService) CreateSuspension(ctx context.Context, req SuspensionRequest, userID string) (SuspensionResponse, error) {
	rate, from, to, err := parseRateWindow(req.RatePct, req.ValidFrom, req.ValidTo)
	if err != nil {
		return SuspensionResponse{}, err
	}

	count, err := s.repo.CountOverlappingSuspensions(ctx, req.ImporterCode, req.HS6, from, to, nil)
	if err != nil {
		return SuspensionResponse{}, fmt.Errorf("failed to check overlap: %w", err)
	}
	if count > 0 {
		return SuspensionResponse{}, fmt.Errorf("a suspension for %s/%s already exists with overlapping validity dates", req.ImporterCode, req.HS6)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	rec := model.TariffSuspension{
		ImporterCode: req.ImporterCode,
		HS6:          req.HS6,
		RatePct:      rate,
		IsActive:     active,
		Note:         req.Note,
		ValidFrom:    from,
		ValidTo:      to,
	}
	if err := s.repo.CreateSuspension(ctx, &rec); err != nil {
		return SuspensionResponse{}, fmt.Errorf("failed to create suspension: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionCreateSuspension, rec.ID.String(), suspEntityName(rec), req)
	s.broadcast("tariff.suspension.created", "suspension", rec.ID.String(), rec.HS6)

	return toSuspensionResponse(rec), nil
}

func (s *tariffAdminService) UpdateSuspension(ctx context.Context, id string, req SuspensionRequest, userID string) (SuspensionResponse, error) {
	recID, err := uuid.Parse(id)
	if err != nil {
		return SuspensionResponse{}, fmt.Errorf("invalid suspension id: %w", err)
	}

	rec, err := s.repo.FindSuspensionByID(ctx, recID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SuspensionResponse{}, fmt.Errorf("suspension not found")
		}
		return SuspensionResponse{}, fmt.Errorf("failed to fetch suspension: %w", err)
	}

	rate, from, to, err := parseRateWindow(req.RatePct, req.ValidFrom, req.ValidTo)
	if err != nil {
		return SuspensionResponse{}, err
	}

	count, err := s.repo.CountOverlappingSuspensions(ctx, req.ImporterCode, req.HS6, from, to, &recID)
	if err != nil {
		return SuspensionResponse{}, fmt.Errorf("failed to check overlap: %w", err)
	}
	if count > 0 {
		return SuspensionResponse{}, fmt.Errorf("a suspension for %s/%s already exists with overlapping validity dates", req.ImporterCode, req.HS6)
	}

	rec.ImporterCode = req.ImporterCode
	rec.HS6 = req.HS6
	rec.RatePct = rate
	rec.Note = req.Note
	rec.ValidFrom = from
	rec.ValidTo = to
	if req.IsActive != nil {
		rec.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateSuspension(ctx, rec); err != nil {
		return SuspensionResponse{}, fmt.Errorf("failed to update suspension: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionUpdateSuspension, rec.ID.String(), suspEntityName(*rec), req)
	s.broadcast("tariff.suspension.updated", "suspension", rec.ID.String(), rec.HS6)

	return toSuspensionResponse(*rec), nil
}

func (s *tariffAdminService) DeleteSuspension(ctx context.Context, id string, userID string) error {
	recID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid suspension id: %w", err)
	}

	rec, err := s.repo.FindSuspensionByID(ctx, recID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("suspension not found")
		}
		return fmt.Errorf("failed to fetch suspension: %w", err)
	}

	if err := s.repo.DeleteSuspension(ctx, recID); err != nil {
		return fmt.Errorf("failed to delete suspension: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionDeleteSuspension, id, suspEntityName(*rec), map[string]string{"deleted_id": id})
	s.broadcast("tariff.suspension.deleted", "suspension", id, rec.HS6)

	return nil
}

func (s *tariffAdminService) ListSuspensions(ctx context.Context, page, limit int) ([]SuspensionResponse, int64, error) {
	recs, total, err := s.repo.ListSuspensions(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch suspensions: %w", err)
	}

	res := make([]SuspensionResponse, 0, len(recs))
	for _, r := range recs {
		res = append(res, toSuspensionResponse(r))
	}
	return res, total, nil
}

// --- Measures ---

func (s *tariffAdminService) CreateMeasure(ctx context.Context, req MeasureRequest, userID string) (MeasureResponse, error) {
	adval, specific, from, to, err := parseMeasureFields(req)
	if err != nil {
		return MeasureResponse{}, err
	}

	count, err := s.repo.CountOverlappingMeasures(ctx, req.ImporterCode, req.HS6, from, to, nil)
	if err != nil {
		return MeasureResponse{}, fmt.Errorf("failed to check overlap: %w", err)
	}
	if count > 0 {
		return MeasureResponse{}, fmt.Errorf("a measure for %s/%s already exists with overlapping validity dates", req.ImporterCode, req.HS6)
	}

	rec := model.TariffMeasure{
		ImporterCode:  req.ImporterCode,
		HS6:           req.HS6,
		AdValoremPct:  adval,
		SpecificPerKg: specific,
		IsCompound:    req.IsCompound,
		ValidFrom:     from,
		ValidTo:       to,
	}
	if err := s.repo.CreateMeasure(ctx, &rec); err != nil {
		return MeasureResponse{}, fmt.Errorf("failed to create measure: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionCreateMeasure, rec.ID.String(), measureEntityName(rec), req)
	s.broadcast("tariff.measure.created", "measure", rec.ID.String(), rec.HS6)

	return toMeasureResponse(rec), nil
}

func (s *tariffAdminService) UpdateMeasure(ctx context.Context, id string, req MeasureRequest, userID string) (MeasureResponse, error) {
	recID, err := uuid.Parse(id)
	if err != nil {
		return MeasureResponse{}, fmt.Errorf("invalid measure id: %w", err)
	}

	rec, err := s.repo.FindMeasureByID(ctx, recID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeasureResponse{}, fmt.Errorf("measure not found")
		}
		return MeasureResponse{}, fmt.Errorf("failed to fetch measure: %w", err)
	}

	adval, specific, from, to, err := parseMeasureFields(req)
	if err != nil {
		return MeasureResponse{}, err
	}

	count, err := s.repo.CountOverlappingMeasures(ctx, req.ImporterCode, req.HS6, from, to, &recID)
	if err != nil {
		return MeasureResponse{}, fmt.Errorf("failed to check overlap: %w", err)
	}
	if count > 0 {
		return MeasureResponse{}, fmt.Errorf("a measure for %s/%s already exists with overlapping validity dates", req.ImporterCode, req.HS6)
	}

	rec.ImporterCode = req.ImporterCode
	rec.HS6 = req.HS6
	rec.AdValoremPct = adval
	rec.SpecificPerKg = specific
	rec.IsCompound = req.IsCompound
	rec.ValidFrom = from
	rec.ValidTo = to

	if err := s.repo.UpdateMeasure(ctx, rec); err != nil {
		return MeasureResponse{}, fmt.Errorf("failed to update measure: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionUpdateMeasure, rec.ID.String(), measureEntityName(*rec), req)
	s.broadcast("tariff.measure.updated", "measure", rec.ID.String(), rec.HS6)

	return toMeasureResponse(*rec), nil
}

func (s *tariffAdminService) DeleteMeasure(ctx context.Context, id string, userID string) error {
	recID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid measure id: %w", err)
	}

	rec, err := s.repo.FindMeasureByID(ctx, recID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("measure not found")
		}
		return fmt.Errorf("failed to fetch measure: %w", err)
	}

	if err := s.repo.DeleteMeasure(ctx, recID); err != nil {
		return fmt.Errorf("failed to delete measure: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionDeleteMeasure, id, measureEntityName(*rec), map[string]string{"deleted_id": id})
	s.broadcast("tariff.measure.deleted", "measure", id, rec.HS6)

	return nil
}

func (s *tariffAdminService) ListMeasures(ctx context.Context, page, limit int) ([]MeasureResponse, int64, error) {
	recs, total, err := s.repo.ListMeasures(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch measures: %w", err)
	}

	res := make([]MeasureResponse, 0, len(recs))
	for _, r := range recs {
		res = append(res, toMeasureResponse(r))
	}
	return res, total, nil
}

// --- Helpers ---

func parseRateWindow(rateStr, fromStr, toStr string) (decimal.Decimal, time.Time, *time.Time, error) {
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return decimal.Zero, time.Time{}, nil, fmt.Errorf("invalid rate value: %w", err)
	}
	if rate.IsNegative() {
		return decimal.Zero, time.Time{}, nil, fmt.Errorf("rate must not be negative")
	}

	from, to, err := parseWindow(fromStr, toStr)
	if err != nil {
		return decimal.Zero, time.Time{}, nil, err
	}
	return rate, from, to, nil
}

func parseWindow(fromStr, toStr string) (time.Time, *time.Time, error) {
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("invalid valid_from date format (expected YYYY-MM-DD): %w", err)
	}

	var to *time.Time
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("invalid valid_to date format (expected YYYY-MM-DD): %w", err)
		}
		if t.Before(from) {
			return time.Time{}, nil, fmt.Errorf("valid_to must not precede valid_from")
		}
		to = &t
	}
	return from, to, nil
}

func parseMeasureFields(req MeasureRequest) (adval, specific *decimal.Decimal, from time.Time, to *time.Time, err error) {
	if req.AdValoremPct == "" && req.SpecificPerKg == "" {
		return nil, nil, time.Time{}, nil, fmt.Errorf("a measure requires at least one of ad_valorem_pct or specific_per_kg")
	}

	if req.AdValoremPct != "" {
		d, parseErr := decimal.NewFromString(req.AdValoremPct)
		if parseErr != nil {
			return nil, nil, time.Time{}, nil, fmt.Errorf("invalid ad_valorem_pct: %w", parseErr)
		}
		if d.IsNegative() {
			return nil, nil, time.Time{}, nil, fmt.Errorf("ad_valorem_pct must not be negative")
		}
		adval = &d
	}

	if req.SpecificPerKg != "" {
		d, parseErr := decimal.NewFromString(req.SpecificPerKg)
		if parseErr != nil {
			return nil, nil, time.Time{}, nil, fmt.Errorf("invalid specific_per_kg: %w", parseErr)
		}
		if d.IsNegative() {
			return nil, nil, time.Time{}, nil, fmt.Errorf("specific_per_kg must not be negative")
		}
		specific = &d
	}

	if req.IsCompound && (adval == nil || specific == nil) {
		return nil, nil, time.Time{}, nil, fmt.Errorf("a compound measure requires both rate components")
	}

	from, to, err = parseWindow(req.ValidFrom, req.ValidTo)
	if err != nil {
		return nil, nil, time.Time{}, nil, err
	}
	return adval, specific, from, to, nil
}

func toPreferenceResponse(r model.TariffPreference) PreferenceResponse {
	resp := PreferenceResponse{
		ID:           r.ID.String(),
		ImporterCode: r.ImporterCode,
		ExporterCode: r.ExporterCode,
		HS6:          r.HS6,
		RatePct:      r.RatePct.StringFixed(4),
		ValidFrom:    r.ValidFrom.Format("2006-01-02"),
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.ValidTo != nil {
		s := r.ValidTo.Format("2006-01-02")
		resp.ValidTo = &s
	}
	return resp
}

func toSuspensionResponse(r model.TariffSuspension) SuspensionResponse {
	resp := SuspensionResponse{
		ID:           r.ID.String(),
		ImporterCode: r.ImporterCode,
		HS6:          r.HS6,
		RatePct:      r.RatePct.StringFixed(4),
		IsActive:     r.IsActive,
		Note:         r.Note,
		ValidFrom:    r.ValidFrom.Format("2006-01-02"),
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.ValidTo != nil {
		s := r.ValidTo.Format("2006-01-02")
		resp.ValidTo = &s
	}
	return resp
}

func toMeasureResponse(r model.TariffMeasure) MeasureResponse {
	resp := MeasureResponse{
		ID:           r.ID.String(),
		ImporterCode: r.ImporterCode,
		HS6:          r.HS6,
		IsCompound:   r.IsCompound,
		ValidFrom:    r.ValidFrom.Format("2006-01-02"),
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.AdValoremPct != nil {
		s := r.AdValoremPct.StringFixed(4)
		resp.AdValoremPct = &s
	}
	if r.SpecificPerKg != nil {
		s := r.SpecificPerKg.StringFixed(4)
		resp.SpecificPerKg = &s
	}
	if r.ValidTo != nil {
		s := r.ValidTo.Format("2006-01-02")
		resp.ValidTo = &s
	}
	return resp
}

func prefEntityName(r model.TariffPreference) string {
	return r.ImporterCode + "/" + r.ExporterCode + "/" + r.HS6
}

func suspEntityName(r model.TariffSuspension) string {
	return r.ImporterCode + "/" + r.HS6
}

func measureEntityName(r model.TariffMeasure) string {
	return r.ImporterCode + "/" + r.HS6
}

func (s *tariffAdminService) writeAuditLog(ctx context.Context, userID, action, entityID, entityName string, details interface{}) {
	detailsJSON, _ := json.Marshal(details)

	entry := model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}

	if userID != "" {
		parsed, err := uuid.Parse(userID)
		if err == nil {
			entry.UserID = &parsed
		}
	}

	// Best-effort audit log — don't fail the operation if logging fails
	_ = s.db.WithContext(ctx).Create(&entry).Error
}

func (s *tariffAdminService) broadcast(event, family, id, hs6 string) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(RateChangeEvent{Event: event, Family: family, ID: id, HS6: hs6})
	if err != nil {
		return
	}
	s.hub.Broadcast <- payload
}
