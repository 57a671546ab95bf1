package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Victamina15/billtracky-2/internal/customer/domain"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *service) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Customer, error) {
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 50
	}
	return s.repo.Search(ctx, s.db, req)
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	customerID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 100 {
		return nil, domain.ErrInvalidName
	}
	phone := strings.TrimSpace(req.Phone)
	if len(phone) > 30 {
		return nil, domain.ErrInvalidPhone
	}

	customer := &domain.Customer{
		ID:      s.genID.Generate(),
		Name:    name,
		Phone:   phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := s.repo.Create(ctx, s.db, customer); err != nil {
		return nil, err
	}

	s.log.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
	)
	return customer, nil
}

func (s *service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Customer, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 100 {
			return nil, domain.ErrInvalidName
		}
		customer.Name = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if len(phone) > 30 {
			return nil, domain.ErrInvalidPhone
		}
		customer.Phone = phone
	}
	if req.Address != nil {
		customer.Address = req.Address
	}
	if req.Notes != nil {
		customer.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, s.db, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func parseID(id string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return parsed, nil
}
