package service

import (
	"context"
	"strings"
	"time"

	"github.com/Victamina15/billtracky-2/internal/catalog/domain"
	"github.com/Victamina15/billtracky-2/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Catalog {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) ListServices(ctx context.Context, req domain.ListServicesRequest) ([]domain.Service, error) {
	filter := domain.ServiceFilter{Active: req.Active}
	if category := strings.TrimSpace(req.CategoryID); category != "" && category != "todos" {
		id, err := parseID(category)
		if err != nil {
			return nil, domain.ErrInvalidCategory
		}
		filter.CategoryID = id
	}

	items, err := s.repo.ListServices(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	services := make([]domain.Service, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		services = append(services, *item)
	}
	return services, nil
}

func (s *Service) GetService(ctx context.Context, id string) (domain.Service, error) {
	serviceID, err := parseID(id)
	if err != nil {
		return domain.Service{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindServiceByID(ctx, s.db, serviceID)
	if err != nil {
		return domain.Service{}, err
	}
	if item == nil {
		return domain.Service{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) CreateService(ctx context.Context, req domain.CreateServiceRequest) (domain.Service, error) {
	categoryID, err := parseID(req.CategoryID)
	if err != nil {
		return domain.Service{}, domain.ErrInvalidCategory
	}

	category, err := s.repo.FindCategoryByID(ctx, s.db, categoryID)
	if err != nil {
		return domain.Service{}, err
	}
	if category == nil {
		return domain.Service{}, domain.ErrCategoryNotFound
	}

	now := time.Now().UTC()
	service := domain.Service{
		ID:               s.genID.Generate(),
		CategoryID:       categoryID,
		Name:             strings.TrimSpace(req.Name),
		Price:            req.Price.Round(2),
		Unit:             req.Unit,
		Description:      req.Description,
		EstimatedMinutes: req.EstimatedMinutes,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := service.Validate(); err != nil {
		return domain.Service{}, err
	}

	if err := s.repo.InsertService(ctx, s.db, &service); err != nil {
		return domain.Service{}, err
	}

	s.log.Info("service created",
		zap.String("service_id", service.ID.String()),
		zap.String("name", service.Name),
	)
	return service, nil
}

func (s *Service) UpdateService(ctx context.Context, req domain.UpdateServiceRequest) (domain.Service, error) {
	serviceID, err := parseID(req.ID)
	if err != nil {
		return domain.Service{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindServiceByID(ctx, s.db, serviceID)
	if err != nil {
		return domain.Service{}, err
	}
	if item == nil {
		return domain.Service{}, domain.ErrNotFound
	}

	if req.CategoryID != nil {
		categoryID, err := parseID(*req.CategoryID)
		if err != nil {
			return domain.Service{}, domain.ErrInvalidCategory
		}
		category, err := s.repo.FindCategoryByID(ctx, s.db, categoryID)
		if err != nil {
			return domain.Service{}, err
		}
		if category == nil {
			return domain.Service{}, domain.ErrCategoryNotFound
		}
		item.CategoryID = categoryID
	}
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		item.Price = req.Price.Round(2)
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.EstimatedMinutes != nil {
		item.EstimatedMinutes = req.EstimatedMinutes
	}
	item.UpdatedAt = time.Now().UTC()

	if err := item.Validate(); err != nil {
		return domain.Service{}, err
	}
	if err := s.repo.UpdateService(ctx, s.db, item); err != nil {
		return domain.Service{}, err
	}
	return *item, nil
}

func (s *Service) DeleteService(ctx context.Context, id string) error {
	serviceID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindServiceByID(ctx, s.db, serviceID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return s.repo.DeleteService(ctx, s.db, serviceID)
}

func (s *Service) ToggleService(ctx context.Context, id string) (domain.Service, error) {
	serviceID, err := parseID(id)
	if err != nil {
		return domain.Service{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindServiceByID(ctx, s.db, serviceID)
	if err != nil {
		return domain.Service{}, err
	}
	if item == nil {
		return domain.Service{}, domain.ErrNotFound
	}

	item.Active = !item.Active
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateService(ctx, s.db, item); err != nil {
		return domain.Service{}, err
	}
	return *item, nil
}

func (s *Service) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	items, err := s.repo.ListCategories(ctx, s.db, activeOnly)
	if err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		categories = append(categories, *item)
	}
	return categories, nil
}

func (s *Service) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.Category, error) {
	now := time.Now().UTC()
	name := strings.TrimSpace(req.Name)
	category := domain.Category{
		ID:          s.genID.Generate(),
		Name:        name,
		Slug:        slug.Make(name),
		Color:       strings.TrimSpace(req.Color),
		Description: req.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if category.Color == "" {
		category.Color = "#6B7280"
	}
	if err := category.Validate(); err != nil {
		return domain.Category{}, err
	}

	if err := s.repo.InsertCategory(ctx, s.db, &category); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Category{}, domain.ErrDuplicateCategory
		}
		return domain.Category{}, err
	}
	return category, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
