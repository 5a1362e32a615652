package constants

const (
	// Session / context
	SessionCookieName = "kanban_session"
	ContextKeyUserID  = "user_id"
	HeaderUserID      = "user-id"
	HeaderRequestID   = "X-Request-ID"

	// Auth
	MinPasswordLength = 6
	AccessKeyBytes    = 4

	// Boards
	DefaultUserBoardName   = "My Kanban Board"
	GroupBoardNameTemplate = "Group Board (%s)"

	// Notifications
	NotificationFeedLimit = 50

	// AI
	MaxAIGeneratedTasks = 20
)
