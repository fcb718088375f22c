package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"product-store/internal/products"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

type Repository interface {
	Insert(ctx context.Context, p products.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (products.Product, error)
	FindByPriceRange(ctx context.Context, r products.PriceRange) ([]products.Product, error)
	UpdateByID(ctx context.Context, id uuid.UUID, patch products.ProductPatch) (products.Product, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type Publisher interface {
	Publish(ctx context.Context, event products.ProductEvent) error
}

type Service struct {
	repo      Repository
	publisher Publisher
	logger    *slog.Logger
	created   prometheus.Counter
	updated   prometheus.Counter
	deleted   prometheus.Counter
}

func New(repo Repository, publisher Publisher, logger *slog.Logger, created, updated, deleted prometheus.Counter) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		created:   created,
		updated:   updated,
		deleted:   deleted,
	}
}

// CreateProduct inserts a new product, generating an id when the input does
// not carry one and stamping created_at with the current server time. A
// uniqueness violation on id surfaces as a 400 domain error.
func (s *Service) CreateProduct(ctx context.Context, in products.CreateProduct) (products.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return products.Product{}, products.ErrInvalidName
	}
	if in.Quantity < 0 {
		return products.Product{}, products.ErrInvalidQuantity
	}
	if in.Price < 0 {
		return products.Product{}, products.ErrInvalidPrice
	}

	id := uuid.New()
	if in.ID != nil {
		id = *in.ID
	}

	product := products.Product{
		ID:        id.String(),
		Name:      in.Name,
		Quantity:  in.Quantity,
		Price:     in.Price,
		Status:    in.Status != nil && *in.Status,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		if errors.Is(err, products.ErrDuplicateID) {
			return products.Product{}, products.DuplicateIDError(id)
		}
		return products.Product{}, fmt.Errorf("repo insert: %w", err)
	}

	if err := s.publisher.Publish(ctx, products.ProductEvent{
		EventType: products.EventCreated,
		ProductID: product.ID,
		Name:      product.Name,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.logger.Error("publish product_created event failed",
			"product_id", product.ID,
			"error", err,
		)
	}

	s.created.Inc()
	return product, nil
}

// GetProduct returns the product with the given id, or a 404 domain error
// naming the id when no document matches.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (products.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			return products.Product{}, products.NotFoundError(id)
		}
		return products.Product{}, fmt.Errorf("repo find %s: %w", id, err)
	}
	return product, nil
}

// QueryProducts returns the products whose price falls strictly inside the
// given range. Both bounds are exclusive; with no bounds every product is
// returned, in store iteration order.
func (s *Service) QueryProducts(ctx context.Context, r products.PriceRange) ([]products.Product, error) {
	items, err := s.repo.FindByPriceRange(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("repo query: %w", err)
	}
	return items, nil
}

// UpdateProduct applies the non-nil patch fields to the matching document
// atomically and returns the post-update state. updated_at defaults to the
// current server time unless the patch carries one.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, patch products.ProductPatch) (products.Product, error) {
	if patch.UpdatedAt == nil {
		now := time.Now().UTC()
		patch.UpdatedAt = &now
	}

	product, err := s.repo.UpdateByID(ctx, id, patch)
	if err != nil {
		if errors.Is(err, products.ErrNotFound) {
			return products.Product{}, products.NotFoundError(id)
		}
		return products.Product{}, fmt.Errorf("repo update %s: %w", id, err)
	}

	if err := s.publisher.Publish(ctx, products.ProductEvent{
		EventType: products.EventUpdated,
		ProductID: product.ID,
		Name:      product.Name,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.logger.Error("publish product_updated event failed",
			"product_id", product.ID,
			"error", err,
		)
	}

	s.updated.Inc()
	return product, nil
}

// DeleteProduct removes the matching document. Deleting an id that no
// longer exists fails with a 404 domain error, so a second delete of the
// same id is not idempotent.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, products.ErrNotFound) {
			return products.NotFoundError(id)
		}
		return fmt.Errorf("repo delete %s: %w", id, err)
	}

	if err := s.publisher.Publish(ctx, products.ProductEvent{
		EventType: products.EventDeleted,
		ProductID: id.String(),
		Timestamp: time.Now().UTC(),
	}); err != nil {
		s.logger.Error("publish product_deleted event failed",
			"product_id", id,
			"error", err,
		)
	}

	s.deleted.Inc()
	return nil
}
