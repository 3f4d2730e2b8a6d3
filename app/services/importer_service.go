package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/retailnet/orders-api/app/apperrors"
	"github.com/retailnet/orders-api/app/models"
	"github.com/retailnet/orders-api/app/repositories"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// PriceListPayload is the document a partner uploads to replace their
// catalog. Category ids are the partner's own numbering and only link goods
// to categories within the payload; nothing persists them.
type PriceListPayload struct {
	Shop       string            `json:"shop" yaml:"shop" validate:"required"`
	URL        string            `json:"url" yaml:"url"`
	Categories []PayloadCategory `json:"categories" yaml:"categories" validate:"required,min=1,dive"`
	Goods      []PayloadGood     `json:"goods" yaml:"goods" validate:"dive"`
}

type PayloadCategory struct {
	ID   int    `json:"id" yaml:"id" validate:"required"`
	Name string `json:"name" yaml:"name" validate:"required"`
}

type PayloadGood struct {
	ID         int               `json:"id" yaml:"id" validate:"required"`
	Category   int               `json:"category" yaml:"category" validate:"required"`
	Model      string            `json:"model" yaml:"model"`
	Name       string            `json:"name" yaml:"name" validate:"required"`
	Price      float64           `json:"price" yaml:"price" validate:"gte=0"`
	PriceRRC   float64           `json:"price_rrc" yaml:"price_rrc" validate:"gte=0"`
	Quantity   int               `json:"quantity" yaml:"quantity" validate:"gte=0"`
	Parameters map[string]string `json:"parameters" yaml:"parameters"`
}

type ImportResult struct {
	Shop       string `json:"shop"`
	Categories int    `json:"categories"`
	Products   int    `json:"products"`
	Parameters int    `json:"parameters"`
}

type ImporterService struct {
	db              *gorm.DB
	userRepo        repositories.UserRepository
	shopRepo        repositories.ShopRepository
	categoryRepo    repositories.CategoryRepository
	productRepo     repositories.ProductRepository
	productInfoRepo repositories.ProductInfoRepository
	parameterRepo   repositories.ParameterRepository
	validate        *validator.Validate
	notifier        Notifier
}

func NewImporterService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	shopRepo repositories.ShopRepository,
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	productInfoRepo repositories.ProductInfoRepository,
	parameterRepo repositories.ParameterRepository,
	notifier Notifier,
) *ImporterService {
	return &ImporterService{
		db:              db,
		userRepo:        userRepo,
		shopRepo:        shopRepo,
		categoryRepo:    categoryRepo,
		productRepo:     productRepo,
		productInfoRepo: productInfoRepo,
		parameterRepo:   parameterRepo,
		validate:        validator.New(),
		notifier:        notifier,
	}
}

// ImportCatalog replaces the calling partner's whole catalog from an
// uploaded price list. All-or-nothing: any malformed good aborts before or
// rolls back every write, leaving the prior catalog untouched.
func (s *ImporterService) ImportCatalog(ctx context.Context, userID, contentType string, body []byte) (*ImportResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !user.IsActive || user.Type != models.UserTypeShop {
		return nil, fmt.Errorf("%w: only shop accounts may update a catalog", apperrors.ErrAuthorization)
	}

	payload, err := s.decodePayload(contentType, body)
	if err != nil {
		return nil, err
	}

	shop, err := s.shopRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop: %w", err)
	}
	if shop != nil && !shop.State {
		return nil, fmt.Errorf("%w: enable order intake before importing", apperrors.ErrStoreClosed)
	}

	result := &ImportResult{Shop: payload.Shop}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ImportCatalog: rolling back after panic: %v", r)
			tx.Rollback()
			panic(r)
		}
	}()

	if shop == nil {
		shop = &models.Shop{Name: payload.Shop, URL: payload.URL, UserID: &userID}
	} else {
		shop.Name = payload.Shop
		if payload.URL != "" {
			shop.URL = payload.URL
		}
	}
	if err := s.shopRepo.Upsert(ctx, tx, shop); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to upsert shop: %w", err)
	}

	categoryByPayloadID := make(map[int]*models.Category, len(payload.Categories))
	for _, pc := range payload.Categories {
		category, err := s.categoryRepo.UpsertByName(ctx, tx, pc.Name)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to upsert category %q: %w", pc.Name, err)
		}
		if err := s.shopRepo.AddCategory(ctx, tx, shop, category); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to link category %q: %w", pc.Name, err)
		}
		categoryByPayloadID[pc.ID] = category
		result.Categories++
	}

	// Full replace: every previous SKU of this shop goes away, along with
	// parameter values and order items still referencing them.
	if err := s.productInfoRepo.DeleteByShop(ctx, tx, shop.ID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to clear catalog: %w", err)
	}

	for _, good := range payload.Goods {
		category := categoryByPayloadID[good.Category]

		product, err := s.productRepo.UpsertByNameAndCategory(ctx, tx, good.Name, category.ID)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to upsert product %q: %w", good.Name, err)
		}

		model := good.Model
		if model == "" {
			model = good.Name
		}
		info := &models.ProductInfo{
			Name:      model,
			Quantity:  good.Quantity,
			Price:     decimal.NewFromFloat(good.Price),
			PriceRRC:  decimal.NewFromFloat(good.PriceRRC),
			ProductID: product.ID,
			ShopID:    shop.ID,
		}
		if err := s.productInfoRepo.Create(ctx, tx, info); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				tx.Rollback()
				return nil, fmt.Errorf("%w: good %d listed twice for the same product", apperrors.ErrValidation, good.ID)
			}
			tx.Rollback()
			return nil, fmt.Errorf("failed to create listing for good %d: %w", good.ID, err)
		}
		result.Products++

		for name, value := range good.Parameters {
			parameter, err := s.parameterRepo.UpsertByName(ctx, tx, name)
			if err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to upsert parameter %q: %w", name, err)
			}
			pp := &models.ProductParameter{
				ProductInfoID: info.ID,
				ParameterID:   parameter.ID,
				Value:         value,
			}
			if err := s.parameterRepo.CreateProductParameter(ctx, tx, pp); err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to write parameter %q for good %d: %w", name, good.ID, err)
			}
			result.Parameters++
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	if s.notifier != nil {
		s.notifier.CatalogImported(user, result)
	}

	return result, nil
}

// decodePayload parses and structurally validates the price list before any
// database work. Price lists arrive as YAML by convention; JSON is accepted
// when the request says so.
func (s *ImporterService) decodePayload(contentType string, body []byte) (*PriceListPayload, error) {
	var payload PriceListPayload

	if strings.Contains(contentType, "json") {
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	} else {
		if err := yaml.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	if err := s.validate.Struct(&payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, verrs)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	known := make(map[int]bool, len(payload.Categories))
	for _, pc := range payload.Categories {
		known[pc.ID] = true
	}
	for _, good := range payload.Goods {
		if !known[good.Category] {
			return nil, fmt.Errorf("%w: good %d references unknown category %d", apperrors.ErrValidation, good.ID, good.Category)
		}
	}

	return &payload, nil
}
