package retention

import "errors"

var (
	ErrPolicyNotFound       = errors.New("retention policy not found")
	ErrDuplicatePolicyName  = errors.New("retention policy with this name already exists")
	ErrPolicyNameEmpty      = errors.New("policy name cannot be empty")
	ErrTenantIDEmpty        = errors.New("tenant id cannot be empty")
	ErrInvalidRetentionDays = errors.New("retention days must be greater than zero")
	ErrInvalidSeverity      = errors.New("invalid minimum severity")
	ErrInvalidCategory      = errors.New("invalid category filter")
)
