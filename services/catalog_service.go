package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tilecrm-backend/models"
	"tilecrm-backend/utils"

	"gorm.io/gorm"
)

// CatalogService manages the company and reference lookup lists.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// CreateCompany returns the existing company when one already has the same
// name ignoring case.
func (s *CatalogService) CreateCompany(ctx context.Context, name string) (*models.Company, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, utils.ValidationErrors{"name": "Company name is required"}
	}

	var company models.Company
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).First(&company).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find company: %w", err)
		}
		company = models.Company{Name: name}
		if err := tx.Create(&company).Error; err != nil {
			return fmt.Errorf("create company: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &company, created, nil
}

func (s *CatalogService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := s.db.WithContext(ctx).Order("name").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

func (s *CatalogService) CreateReference(ctx context.Context, name string) (*models.Reference, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.ValidationErrors{"name": "Reference name is required"}
	}
	ref := models.Reference{Name: name}
	if err := s.db.WithContext(ctx).Create(&ref).Error; err != nil {
		return nil, fmt.Errorf("create reference: %w", err)
	}
	return &ref, nil
}

func (s *CatalogService) ListReferences(ctx context.Context) ([]models.Reference, error) {
	var refs []models.Reference
	if err := s.db.WithContext(ctx).Order("name").Find(&refs).Error; err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	return refs, nil
}
