package models

import "time"

// IdempotencyKey tracks processed requests to prevent duplicate transfers.
// Cached responses are scoped to the authenticated user, so one caller's
// key can never replay another caller's response.
type IdempotencyKey struct {
	CreatedAt      time.Time `db:"created_at"`
	Key            string    `db:"key"`
	RequestPath    string    `db:"request_path"`
	ResponseBody   string    `db:"response_body"`
	ResponseStatus int       `db:"response_status"`
	UserID         int64     `db:"user_id"`
}
