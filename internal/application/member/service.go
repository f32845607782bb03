package member

import (
	"context"
	"fmt"

	"github.com/matchclub-api/internal/domain"
	"github.com/matchclub-api/internal/pkg/id"
)

// MemberStore is the subset of the member repository this service needs.
type MemberStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	Update(ctx context.Context, email string, updates map[string]interface{}) error
}

// AvatarStore persists avatar images outside the document store.
type AvatarStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) error
}

// Service is pass-through profile persistence. Field content is stored as
// given; nothing here validates what a name or avatar should look like.
type Service interface {
	Get(ctx context.Context, email string) (*domain.Member, error)
	Update(ctx context.Context, req domain.UpdateMemberRequest) error
	UpdateAvatar(ctx context.Context, req domain.UpdateAvatarRequest) error
}

type service struct {
	memberRepo MemberStore
	avatars    AvatarStore
}

func NewService(memberRepo MemberStore, avatars AvatarStore) Service {
	return &service{memberRepo: memberRepo, avatars: avatars}
}

func (s *service) Get(ctx context.Context, email string) (*domain.Member, error) {
	return s.memberRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
}

func (s *service) Update(ctx context.Context, req domain.UpdateMemberRequest) error {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if len(updates) == 0 {
		return fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	return s.memberRepo.Update(ctx, domain.NormalizeEmail(req.Email), updates)
}

func (s *service) UpdateAvatar(ctx context.Context, req domain.UpdateAvatarRequest) error {
	key := "avatars/" + id.New() + ".png"
	if err := s.avatars.UploadBase64(ctx, key, req.Avatar); err != nil {
		return err
	}
	return s.memberRepo.Update(ctx, domain.NormalizeEmail(req.Email), map[string]interface{}{
		"avatar_key": key,
	})
}
