package auditlog

import "errors"

var (
	ErrRecordNotFound    = errors.New("audit record not found")
	ErrTenantIDEmpty     = errors.New("tenant id cannot be empty")
	ErrActorIDEmpty      = errors.New("actor id cannot be empty")
	ErrActionEmpty       = errors.New("action cannot be empty")
	ErrResourceTypeEmpty = errors.New("resource type cannot be empty")
	ErrResourceIDEmpty   = errors.New("resource id cannot be empty")
	ErrInvalidSeverity   = errors.New("invalid severity")
	ErrInvalidCategory   = errors.New("invalid category")
)
