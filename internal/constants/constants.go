package constants

// Context keys
const (
	ContextKeyUser   = "current_user"
	ContextKeyUserID = "user_id"
)

// Validation limits
const (
	MinPasswordLength = 8
	MinUsernameLength = 3
	MaxUsernameLength = 100
)

// Chat
const (
	// TeamConversationTitle names the shared conversation every active
	// member belongs to.
	TeamConversationTitle = "Family Room"

	DefaultMessageType = "text"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
