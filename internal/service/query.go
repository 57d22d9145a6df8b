package service

import (
	"context"
	"errors"

	domain "github.com/rajansharma08/lyftr-webhook-api/internal/domain/message"
)

const (
	// DefaultListLimit applies when the caller does not request a page size.
	DefaultListLimit = 50

	// MaxListLimit caps a single page.
	MaxListLimit = 100
)

// ErrNegativeOffset is returned when a caller asks for a negative offset.
var ErrNegativeOffset = errors.New("offset must be non-negative")

// QueryService exposes read access to the message store with input clamping.
type QueryService interface {
	Messages(ctx context.Context, f domain.ListFilter) ([]*domain.Message, int64, domain.ListFilter, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

type queryService struct {
	repo domain.Repository
}

// NewQueryService creates a query service over the given repository.
func NewQueryService(repo domain.Repository) QueryService {
	return &queryService{repo: repo}
}

// Messages lists messages for the given filter. The limit defaults to
// DefaultListLimit and is clamped to [1, MaxListLimit]; a negative offset is
// rejected. The effective filter is returned alongside the page so callers
// can echo the applied limit/offset.
func (s *queryService) Messages(ctx context.Context, f domain.ListFilter) ([]*domain.Message, int64, domain.ListFilter, error) {
	if f.Offset < 0 {
		return nil, 0, f, ErrNegativeOffset
	}
	if f.Limit == 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit < 1 {
		f.Limit = 1
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, f, err
	}
	return items, total, f, nil
}

// Stats passes the aggregate view through unchanged.
func (s *queryService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.repo.Stats(ctx)
}
