package match

import (
	"context"
	"time"

	"github.com/matchclub-api/internal/domain"
	"github.com/matchclub-api/internal/pkg/id"
)

// MatchStore is the subset of the match repository this service needs.
type MatchStore interface {
	Put(ctx context.Context, m *domain.Match) error
	ListByEmail(ctx context.Context, email string) ([]domain.Match, error)
}

// Service is pass-through match record persistence.
type Service interface {
	Create(ctx context.Context, req domain.CreateMatchRequest) (*domain.Match, error)
	ListByMember(ctx context.Context, email string) ([]domain.Match, error)
}

type service struct {
	matchRepo MatchStore
}

func NewService(matchRepo MatchStore) Service {
	return &service{matchRepo: matchRepo}
}

func (s *service) Create(ctx context.Context, req domain.CreateMatchRequest) (*domain.Match, error) {
	m := &domain.Match{
		MatchID:   id.New(),
		Email:     domain.NormalizeEmail(req.Email),
		Opponent:  req.Opponent,
		Result:    req.Result,
		PlayedAt:  req.PlayedAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.matchRepo.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) ListByMember(ctx context.Context, email string) ([]domain.Match, error) {
	return s.matchRepo.ListByEmail(ctx, domain.NormalizeEmail(email))
}
