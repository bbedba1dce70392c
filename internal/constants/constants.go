package constants

// Session
const (
	SessionCookieName = "streamseed_session"
	ContextKeyUserID  = "user_id"
)

// Context keys set by access middleware
const (
	ContextKeyProject  = "project"
	ContextKeyCampaign = "campaign"
)

// Auth
const (
	MinPasswordLength = 8
	SessionMaxAgeDays = 7
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// AI campaign drafting
const MaxAIGeneratedDrafts = 10
