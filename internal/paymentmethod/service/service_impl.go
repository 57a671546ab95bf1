package service

import (
	"context"
	"strings"
	"time"

	"github.com/Victamina15/billtracky-2/internal/paymentmethod/domain"
	"github.com/bwmarrin/snowflake"
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

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("paymentmethod.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	items, err := s.repo.List(ctx, s.db, activeOnly)
	if err != nil {
		return nil, err
	}

	methods := make([]domain.PaymentMethod, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		methods = append(methods, *item)
	}
	return methods, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.PaymentMethod, error) {
	methodID, err := parseID(id)
	if err != nil {
		return domain.PaymentMethod{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, methodID)
	if err != nil {
		return domain.PaymentMethod{}, err
	}
	if item == nil {
		return domain.PaymentMethod{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.PaymentMethod, error) {
	now := time.Now().UTC()
	method := domain.PaymentMethod{
		ID:                s.genID.Generate(),
		Name:              strings.TrimSpace(req.Name),
		Type:              req.Type,
		Icon:              strings.TrimSpace(req.Icon),
		RequiresReference: req.RequiresReference,
		CommissionPercent: req.CommissionPercent,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := method.Validate(); err != nil {
		return domain.PaymentMethod{}, err
	}

	if err := s.repo.Insert(ctx, s.db, &method); err != nil {
		return domain.PaymentMethod{}, err
	}

	s.log.Info("payment method created",
		zap.String("payment_method_id", method.ID.String()),
		zap.String("type", string(method.Type)),
	)
	return method, nil
}

func (s *Service) Toggle(ctx context.Context, id string) (domain.PaymentMethod, error) {
	methodID, err := parseID(id)
	if err != nil {
		return domain.PaymentMethod{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, methodID)
	if err != nil {
		return domain.PaymentMethod{}, err
	}
	if item == nil {
		return domain.PaymentMethod{}, domain.ErrNotFound
	}

	item.Active = !item.Active
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.PaymentMethod{}, err
	}
	return *item, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
