package service

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/model"
	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/repository"
)

// --- XML payload ---
//
// The trade-data provider ships reference metadata as a flat XML document:
//
//	<ReferenceData>
//	  <Country code="SGP" name="Singapore" region="Asia"/>
//	  <Product hs6="290531" description="Methanol" category="Chemicals"/>
//	</ReferenceData>
//
// Files can be large, so the decoder walks tokens instead of unmarshalling
// the whole document at once.

type countryElement struct {
	Code   string `xml:"code,attr"`
	Name   string `xml:"name,attr"`
	Region string `xml:"region,attr"`
}

type productElement struct {
	HS6         string `xml:"hs6,attr"`
	Description string `xml:"description,attr"`
	Category    string `xml:"category,attr"`
}

// IngestSummary reports what an import run changed.
type IngestSummary struct {
	CountriesUpserted int      `json:"countries_upserted"`
	ProductsUpserted  int      `json:"products_upserted"`
	Skipped           []string `json:"skipped,omitempty"` // element descriptions that failed validation
}

// --- Interface ---

type IngestService interface {
	ImportReferenceData(ctx context.Context, r io.Reader, userID string) (IngestSummary, error)
}

type ingestService struct {
	countryRepo repository.CountryRepository
	productRepo repository.ProductRepository
	txManager   repository.TransactionManager
	db          *gorm.DB // audit log writes
}

func NewIngestService(countryRepo repository.CountryRepository, productRepo repository.ProductRepository, txManager repository.TransactionManager, db *gorm.DB) IngestService {
	return &ingestService{countryRepo: countryRepo, productRepo: productRepo, txManager: txManager, db: db}
}

// --- Implementation ---

// ImportReferenceData streams the XML document and upserts countries and
// products by their natural keys. The whole run executes in one transaction
// so a malformed document never leaves a partial import behind.
func (s *ingestService) ImportReferenceData(ctx context.Context, r io.Reader, userID string) (IngestSummary, error) {
	var summary IngestSummary

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		decoder := xml.NewDecoder(r)
		for {
			token, err := decoder.Token()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("malformed reference data XML: %w", err)
			}

			start, ok := token.(xml.StartElement)
			if !ok {
				continue
			}

			switch start.Name.Local {
			case "Country":
				var el countryElement
				if err := decoder.DecodeElement(&el, &start); err != nil {
					return fmt.Errorf("malformed Country element: %w", err)
				}
				el.Code = strings.ToUpper(strings.TrimSpace(el.Code))
				if !isoCodeRe.MatchString(el.Code) || el.Name == "" {
					summary.Skipped = append(summary.Skipped, fmt.Sprintf("country %q", el.Code))
					continue
				}
				if err := s.countryRepo.Upsert(txCtx, &model.Country{
					Code:     el.Code,
					Name:     el.Name,
					Region:   el.Region,
					IsActive: true,
				}); err != nil {
					return fmt.Errorf("failed to upsert country %s: %w", el.Code, err)
				}
				summary.CountriesUpserted++

			case "Product":
				var el productElement
				if err := decoder.DecodeElement(&el, &start); err != nil {
					return fmt.Errorf("malformed Product element: %w", err)
				}
				el.HS6 = strings.TrimSpace(el.HS6)
				if !hs6CodeRe.MatchString(el.HS6) {
					summary.Skipped = append(summary.Skipped, fmt.Sprintf("product %q", el.HS6))
					continue
				}
				if err := s.productRepo.Upsert(txCtx, &model.Product{
					HS6:         el.HS6,
					Description: el.Description,
					Category:    el.Category,
				}); err != nil {
					return fmt.Errorf("failed to upsert product %s: %w", el.HS6, err)
				}
				summary.ProductsUpserted++
			}
		}
	})
	if err != nil {
		return IngestSummary{}, err
	}

	s.writeImportAudit(ctx, userID, summary)
	return summary, nil
}

func (s *ingestService) writeImportAudit(ctx context.Context, userID string, summary IngestSummary) {
	detailsJSON, _ := json.Marshal(summary)

	entry := model.AuditLog{
		Action:     model.ActionImportReference,
		EntityName: "reference data import",
		Details:    string(detailsJSON),
	}
	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			entry.UserID = &parsed
		}
	}

	// Best-effort audit log — don't fail the import if logging fails
	_ = s.db.WithContext(ctx).Create(&entry).Error
}
