package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/repository"
)

var isoCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// --- DTOs ---

type CountryRequest struct {
	Code   string `json:"code" binding:"required,len=3"`
	Name   string `json:"name" binding:"required"`
	Region string `json:"region"`
}

type CountryResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Region    string `json:"region"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type CountryService interface {
	CreateCountry(ctx context.Context, req CountryRequest) (CountryResponse, error)
	GetCountryByCode(ctx context.Context, code string) (*CountryResponse, error)
	ListCountries(ctx context.Context, page, limit int, search string) ([]CountryResponse, int64, error)
}

type countryService struct {
	repo repository.CountryRepository
}

func NewCountryService(repo repository.CountryRepository) CountryService {
	return &countryService{repo: repo}
}

// --- Implementation ---

func (s *countryService) CreateCountry(ctx context.Context, req CountryRequest) (CountryResponse, error) {
	code := strings.ToUpper(req.Code)
	if !isoCodeRe.MatchString(code) {
		return CountryResponse{}, fmt.Errorf("country code must be 3 letters")
	}

	if _, err := s.repo.FindByCode(ctx, code); err == nil {
		return CountryResponse{}, fmt.Errorf("country %s already exists", code)
	}

	country := model.Country{
		Code:     code,
		Name:     req.Name,
		Region:   req.Region,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, &country); err != nil {
		return CountryResponse{}, fmt.Errorf("failed to create country: %w", err)
	}

	return toCountryResponse(country), nil
}

func (s *countryService) GetCountryByCode(ctx context.Context, code string) (*CountryResponse, error) {
	country, err := s.repo.FindByCode(ctx, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // unknown code — not an error
		}
		return nil, fmt.Errorf("failed to fetch country: %w", err)
	}

	resp := toCountryResponse(*country)
	return &resp, nil
}

func (s *countryService) ListCountries(ctx context.Context, page, limit int, search string) ([]CountryResponse, int64, error) {
	countries, total, err := s.repo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch countries: %w", err)
	}

	res := make([]CountryResponse, 0, len(countries))
	for _, c := range countries {
		res = append(res, toCountryResponse(c))
	}
	return res, total, nil
}

func toCountryResponse(c model.Country) CountryResponse {
	return CountryResponse{
		ID:        c.ID.String(),
		Code:      c.Code,
		Name:      c.Name,
		Region:    c.Region,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
