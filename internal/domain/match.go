package domain

import "time"

// Match is a pass-through match result record owned by a member.
type Match struct {
	MatchID   string    `json:"id" dynamodbav:"match_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Opponent  string    `json:"opponent" dynamodbav:"opponent"`
	Result    string    `json:"result" dynamodbav:"result"`
	PlayedAt  string    `json:"played_at" dynamodbav:"played_at"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateMatchRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Opponent string `json:"opponent" validate:"required"`
	Result   string `json:"result"`
	PlayedAt string `json:"played_at"` // expected format: YYYY-MM-DD
}
