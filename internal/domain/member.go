package domain

import (
	"strings"
	"time"
)

// Member is one record per email address. The partition key is the email
// uppercased so lookups are case-insensitive regardless of how the address
// was typed at signup or login.
type Member struct {
	Email        string     `json:"email" dynamodbav:"email"`
	CurrentCode  string     `json:"-" dynamodbav:"current_code"`
	CodeIssuedAt *time.Time `json:"-" dynamodbav:"code_issued_at"`
	SessionToken string     `json:"-" dynamodbav:"session_token"`
	SessionIP    string     `json:"-" dynamodbav:"session_ip"`
	Name         string     `json:"name" dynamodbav:"name"`
	AvatarKey    string     `json:"avatar_key,omitempty" dynamodbav:"avatar_key"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// NormalizeEmail canonicalizes an email address into the member partition key.
func NormalizeEmail(email string) string {
	return strings.ToUpper(strings.TrimSpace(email))
}

// EmailRequest is the body shape shared by /requestcode and the protected
// read operations: just the target identity.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Code      string `json:"code" validate:"required"`
	IPAddress string `json:"ip_address"`
}

// UpdateMemberRequest carries partial profile updates. Nil fields are left
// untouched. Profile fields are stored as-is; validating their content is
// the frontend's problem.
type UpdateMemberRequest struct {
	Email string  `json:"email" validate:"required,email"`
	Name  *string `json:"name"`
}

type UpdateAvatarRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Avatar string `json:"avatar" validate:"required"` // base64-encoded image
}
