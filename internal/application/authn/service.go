package authn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matchclub-api/internal/domain"
	"github.com/matchclub-api/internal/infrastructure/smtp"
	"github.com/matchclub-api/internal/pkg/code"
)

// CodeValidity is how long an entry code stays usable after issuance.
const CodeValidity = time.Minute

// MemberStore is the subset of the member repository the authenticator needs.
// Keys passed in are already normalized.
type MemberStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	Put(ctx context.Context, m *domain.Member) error
	Update(ctx context.Context, email string, updates map[string]interface{}) error
}

// Service implements the passwordless login flow: a member requests an entry
// code by email, submits it within the validity window, and receives an
// opaque session token to attach to subsequent requests.
type Service interface {
	// IssueCode creates or refreshes the member's entry code and hands it to
	// the mailer. The store mutation is not rolled back on delivery failure.
	IssueCode(ctx context.Context, email string) error

	// Authenticate checks the submitted code and, on success, mints and
	// persists a new session token.
	Authenticate(ctx context.Context, req domain.LoginRequest) (string, error)

	// Check reports whether the presented token equals the member's stored
	// session token. An empty token never matches, including against a
	// member who has never logged in.
	Check(ctx context.Context, email, token string) (bool, error)
}

// ServiceDeps carries the collaborators for NewService. Now is optional and
// defaults to time.Now; tests override it to pin the expiry clock.
type ServiceDeps struct {
	MemberRepo MemberStore
	Mailer     smtp.Mailer
	Now        func() time.Time
}

type service struct {
	memberRepo MemberStore
	mailer     smtp.Mailer
	now        func() time.Time
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		memberRepo: deps.MemberRepo,
		mailer:     deps.Mailer,
		now:        now,
	}
}

func (s *service) IssueCode(ctx context.Context, email string) error {
	key := domain.NormalizeEmail(email)
	entryCode, err := code.New()
	if err != nil {
		return fmt.Errorf("generate entry code: %w", err)
	}
	issuedAt := s.now().UTC()

	_, err = s.memberRepo.GetByEmail(ctx, key)
	switch {
	case err == nil:
		// Existing member: overwrite the code and its timestamp together,
		// leaving the session token and profile fields alone. A session
		// established earlier stays valid while the new code is pending.
		if err := s.memberRepo.Update(ctx, key, map[string]interface{}{
			"current_code":   entryCode,
			"code_issued_at": issuedAt.Format(time.RFC3339Nano),
		}); err != nil {
			return err
		}
	case isNotFound(err):
		// First code request creates the record with empty profile and
		// session fields.
		if err := s.memberRepo.Put(ctx, &domain.Member{
			Email:        key,
			CurrentCode:  entryCode,
			CodeIssuedAt: &issuedAt,
			CreatedAt:    issuedAt,
			UpdatedAt:    issuedAt,
		}); err != nil {
			return err
		}
	default:
		return err
	}

	// Delivery happens after the store mutation commits. If the mail bounces
	// the code still exists in storage — accepted tradeoff, the member just
	// requests another one.
	if err := s.mailer.SendEmail(email, "Your authorization code",
		"Your authorization code: "+entryCode); err != nil {
		return fmt.Errorf("send authorization code to %s: %v: %w", email, err, domain.ErrDelivery)
	}
	return nil
}

func (s *service) Authenticate(ctx context.Context, req domain.LoginRequest) (string, error) {
	key := domain.NormalizeEmail(req.Email)
	m, err := s.memberRepo.GetByEmail(ctx, key)
	if err != nil {
		return "", err
	}

	// Mismatch is reported before expiration when both hold.
	if m.CurrentCode == "" || m.CurrentCode != req.Code {
		return "", domain.ErrInvalidCode
	}
	if m.CodeIssuedAt == nil || !s.now().Before(m.CodeIssuedAt.Add(CodeValidity)) {
		return "", domain.ErrCodeExpired
	}

	token := uuid.NewString()
	if err := s.memberRepo.Update(ctx, key, map[string]interface{}{
		"session_token": token,
		"session_ip":    req.IPAddress,
	}); err != nil {
		return "", err
	}
	return token, nil
}

func (s *service) Check(ctx context.Context, email, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	m, err := s.memberRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return false, err
	}
	if m.SessionToken == "" {
		return false, nil
	}
	return m.SessionToken == token, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
