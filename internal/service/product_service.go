package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/repository"
)

var hs6CodeRe = regexp.MustCompile(`^[0-9]{6}$`)

// --- DTOs ---

type ProductRequest struct {
	HS6         string `json:"hs6" binding:"required,len=6"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category"`
}

type ProductResponse struct {
	ID          string `json:"id"`
	HS6         string `json:"hs6"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CreatedAt   string `json:"created_at"`
}

// --- Interface ---

type ProductService interface {
	CreateProduct(ctx context.Context, req ProductRequest) (ProductResponse, error)
	GetProductByHS6(ctx context.Context, hs6 string) (*ProductResponse, error)
	ListProducts(ctx context.Context, page, limit int, search string) ([]ProductResponse, int64, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

// --- Implementation ---

func (s *productService) CreateProduct(ctx context.Context, req ProductRequest) (ProductResponse, error) {
	if !hs6CodeRe.MatchString(req.HS6) {
		return ProductResponse{}, fmt.Errorf("hs6 code must be exactly 6 digits")
	}

	if _, err := s.repo.FindByHS6(ctx, req.HS6); err == nil {
		return ProductResponse{}, fmt.Errorf("product %s already exists", req.HS6)
	}

	product := model.Product{
		HS6:         req.HS6,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := s.repo.Create(ctx, &product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to create product: %w", err)
	}

	return toProductResponse(product), nil
}

func (s *productService) GetProductByHS6(ctx context.Context, hs6 string) (*ProductResponse, error) {
	product, err := s.repo.FindByHS6(ctx, hs6)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // unknown code — not an error
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	resp := toProductResponse(*product)
	return &resp, nil
}

func (s *productService) ListProducts(ctx context.Context, page, limit int, search string) ([]ProductResponse, int64, error) {
	products, total, err := s.repo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res, total, nil
}

func toProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		HS6:         p.HS6,
		Description: p.Description,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
