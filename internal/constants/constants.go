package constants

import "time"

// Context keys
const (
	ContextKeyIdentity = "identity"
	ContextKeyUserID   = "user_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 7
	BearerPrefix      = "Bearer "
	DefaultTokenTTL   = 7 * 24 * time.Hour
)

// AI
const (
	MaxAIGeneratedTasks = 20
)

// Site
const (
	SiteVersion = "1.0.0"
)
