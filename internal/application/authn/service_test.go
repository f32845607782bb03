package authn

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matchclub-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockMemberStore struct{ mock.Mock }

func (m *mockMemberStore) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	args := m.Called(ctx, email)
	if v, _ := args.Get(0).(*domain.Member); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMemberStore) Put(ctx context.Context, mm *domain.Member) error {
	return m.Called(ctx, mm).Error(0)
}
func (m *mockMemberStore) Update(ctx context.Context, email string, updates map[string]interface{}) error {
	return m.Called(ctx, email, updates).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// --- builder ---

func newService(ms *mockMemberStore, ml *mockMailer, now func() time.Time) Service {
	return NewService(ServiceDeps{MemberRepo: ms, Mailer: ml, Now: now})
}

func memberWithCode(code string, issuedAt time.Time) *domain.Member {
	return &domain.Member{
		Email:        "NEW@X.COM",
		CurrentCode:  code,
		CodeIssuedAt: &issuedAt,
	}
}

// --- IssueCode ---

func TestIssueCode_NewMember_CreatesRecord(t *testing.T) {
	ms := &mockMemberStore{}
	ml := &mockMailer{}

	var created *domain.Member
	ms.On("GetByEmail", mock.Anything, "NEW@X.COM").Return(nil, domain.ErrNotFound)
	ms.On("Put", mock.Anything, mock.AnythingOfType("*domain.Member")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Member) }).
		Return(nil)
	ml.On("SendEmail", "new@x.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(ms, ml, nil)
	require.NoError(t, svc.IssueCode(context.Background(), "new@x.com"))

	require.NotNil(t, created)
	assert.Equal(t, "NEW@X.COM", created.Email)
	assert.Len(t, created.CurrentCode, 7)
	require.NotNil(t, created.CodeIssuedAt)
	assert.Empty(t, created.SessionToken)
	ms.AssertExpectations(t)
	ml.AssertExpectations(t)
}

func TestIssueCode_ExistingMember_OverwritesCodeOnly(t *testing.T) {
	ms := &mockMemberStore{}
	ml := &mockMailer{}

	issued := time.Now().Add(-time.Hour)
	ms.On("GetByEmail", mock.Anything, "A@B.COM").Return(memberWithCode("oldcode", issued), nil)

	var updates map[string]interface{}
	ms.On("Update", mock.Anything, "A@B.COM", mock.Anything).
		Run(func(args mock.Arguments) { updates = args.Get(2).(map[string]interface{}) }).
		Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(ms, ml, nil)
	require.NoError(t, svc.IssueCode(context.Background(), "a@b.com"))

	require.Len(t, updates, 2)
	assert.Contains(t, updates, "current_code")
	assert.Contains(t, updates, "code_issued_at")
	assert.NotContains(t, updates, "session_token")
}

func TestIssueCode_MailsTheStoredCode(t *testing.T) {
	ms := &mockMemberStore{}
	ml := &mockMailer{}

	var storedCode, mailedBody string
	ms.On("GetByEmail", mock.Anything, "A@B.COM").Return(nil, domain.ErrNotFound)
	ms.On("Put", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { storedCode = args.Get(1).(*domain.Member).CurrentCode }).
		Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { mailedBody = args.String(2) }).
		Return(nil)

	svc := newService(ms, ml, nil)
	require.NoError(t, svc.IssueCode(context.Background(), "a@b.com"))
	assert.True(t, strings.Contains(mailedBody, storedCode))
}

func TestIssueCode_DeliveryFailure_CodeStaysStored(t *testing.T) {
	ms := &mockMemberStore{}
	ml := &mockMailer{}

	ms.On("GetByEmail", mock.Anything, "A@B.COM").Return(nil, domain.ErrNotFound)
	ms.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(errors.New("relay down"))

	svc := newService(ms, ml, nil)
	err := svc.IssueCode(context.Background(), "a@b.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDelivery))
	// The record was written before delivery was attempted.
	ms.AssertCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestIssueCode_StoreFailure_Propagates(t *testing.T) {
	ms := &mockMemberStore{}
	ml := &mockMailer{}

	ms.On("GetByEmail", mock.Anything, "A@B.COM").Return(nil, domain.ErrNotFound)
	ms.On("Put", mock.Anything, mock.Anything).Return(errors.New("throughput exceeded"))

	svc := newService(ms, ml, nil)
	err := svc.IssueCode(context.Background(), "a@b.com")

	require.Error(t, err)
	ml.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

// --- Authenticate ---

func TestAuthenticate_UnknownEmail_NotFound(t *testing.T) {
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "NEW@X.COM").Return(nil, domain.ErrNotFound)

	svc := newService(ms, nil, nil)
	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "new@x.com", Code: "abc1234"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAuthenticate_WrongCode_Invalid(t *testing.T) {
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "NEW@X.COM").
		Return(memberWithCode("abc1234", time.Now()), nil)

	svc := newService(ms, nil, nil)
	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "new@x.com", Code: "zzz9999"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCode))
}

func TestAuthenticate_WrongCodeAndExpired_InvalidWins(t *testing.T) {
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "NEW@X.COM").
		Return(memberWithCode("abc1234", time.Now().Add(-time.Hour)), nil)

	svc := newService(ms, nil, nil)
	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "new@x.com", Code: "zzz9999"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCode))
	assert.False(t, errors.Is(err, domain.ErrCodeExpired))
}

func TestAuthenticate_ExpiredCode(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "NEW@X.COM").Return(memberWithCode("abc1234", issued), nil)

	now := func() time.Time { return issued.Add(61 * time.Second) }
	svc := newService(ms, nil, now)
	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "new@x.com", Code: "abc1234"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCodeExpired))
}

func TestAuthenticate_ExactBoundary_Expired(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "NEW@X.COM").Return(memberWithCode("abc1234", issued), nil)

	now := func() time.Time { return issued.Add(60 * time.Second) }
	svc := newService(ms, nil, now)
	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "new@x.com", Code: "abc1234"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCodeExpired))
}

func TestAuthenticate_JustInsideWindow_Succeeds(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "NEW@X.COM").Return(memberWithCode("abc1234", issued), nil)
	ms.On("Update", mock.Anything, "NEW@X.COM", mock.Anything).Return(nil)

	now := func() time.Time { return issued.Add(59 * time.Second) }
	svc := newService(ms, nil, now)
	token, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "new@x.com", Code: "abc1234"})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthenticate_Success_StoresTokenAndIP(t *testing.T) {
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "NEW@X.COM").Return(memberWithCode("abc1234", time.Now()), nil)

	var updates map[string]interface{}
	ms.On("Update", mock.Anything, "NEW@X.COM", mock.Anything).
		Run(func(args mock.Arguments) { updates = args.Get(2).(map[string]interface{}) }).
		Return(nil)

	svc := newService(ms, nil, nil)
	token, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email: "new@x.com", Code: "abc1234", IPAddress: "203.0.113.9",
	})

	require.NoError(t, err)
	assert.Equal(t, token, updates["session_token"])
	assert.Equal(t, "203.0.113.9", updates["session_ip"])
}

func TestAuthenticate_RepeatedLogins_DistinctTokens(t *testing.T) {
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "NEW@X.COM").Return(memberWithCode("abc1234", time.Now()), nil)
	ms.On("Update", mock.Anything, "NEW@X.COM", mock.Anything).Return(nil)

	svc := newService(ms, nil, nil)
	t1, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "new@x.com", Code: "abc1234"})
	require.NoError(t, err)
	t2, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "new@x.com", Code: "abc1234"})
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}

func TestAuthenticate_CaseInsensitiveEmail(t *testing.T) {
	ms := &mockMemberStore{}
	// Issued for A@b.com, submitted as a@B.COM — both hit the same key.
	ms.On("GetByEmail", mock.Anything, "A@B.COM").Return(memberWithCode("abc1234", time.Now()), nil)
	ms.On("Update", mock.Anything, "A@B.COM", mock.Anything).Return(nil)

	svc := newService(ms, nil, nil)
	token, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "a@B.COM", Code: "abc1234"})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

// --- Check ---

func TestCheck_NoToken_False(t *testing.T) {
	svc := newService(&mockMemberStore{}, nil, nil)
	ok, err := svc.Check(context.Background(), "a@b.com", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheck_NoStoredToken_NeverMatches(t *testing.T) {
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "A@B.COM").Return(&domain.Member{Email: "A@B.COM"}, nil)

	svc := newService(ms, nil, nil)
	ok, err := svc.Check(context.Background(), "a@b.com", "some-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheck_MatchingToken_True(t *testing.T) {
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "A@B.COM").
		Return(&domain.Member{Email: "A@B.COM", SessionToken: "tok-1"}, nil)

	svc := newService(ms, nil, nil)
	ok, err := svc.Check(context.Background(), "a@b.com", "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Check(context.Background(), "a@b.com", "tok-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheck_SupersededToken_False(t *testing.T) {
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "A@B.COM").Return(memberWithCode("abc1234", time.Now()), nil)

	var latest string
	ms.On("Update", mock.Anything, "A@B.COM", mock.Anything).
		Run(func(args mock.Arguments) {
			latest, _ = args.Get(2).(map[string]interface{})["session_token"].(string)
		}).
		Return(nil)

	svc := newService(ms, nil, nil)
	first, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "a@b.com", Code: "abc1234"})
	require.NoError(t, err)
	second, err := svc.Authenticate(context.Background(), domain.LoginRequest{Email: "a@b.com", Code: "abc1234"})
	require.NoError(t, err)

	// The store now holds the second token; the first no longer matches.
	assert.Equal(t, second, latest)
	assert.NotEqual(t, first, latest)
}

func TestCheck_UnknownEmail_Propagates(t *testing.T) {
	ms := &mockMemberStore{}
	ms.On("GetByEmail", mock.Anything, "A@B.COM").Return(nil, domain.ErrNotFound)

	svc := newService(ms, nil, nil)
	_, err := svc.Check(context.Background(), "a@b.com", "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
