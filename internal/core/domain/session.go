package domain

import "context"

type sessionCtxKey struct{}

// WithSessionID returns a copy of ctx carrying the caller's session id.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sid)
}

// SessionIDFrom returns the session id set by WithSessionID, or "".
func SessionIDFrom(ctx context.Context) string {
	sid, _ := ctx.Value(sessionCtxKey{}).(string)
	return sid
}

// Session keys, named after the browser storage keys the front-end used.
const (
	KeyCurrentUser  = "currentUser"
	KeyAuthToken    = "authToken"
	KeyTheme        = "theme"
	KeyLanguage     = "language"
	KeyUserLocation = "userLocation"
	KeyVisaProgress = "visaProgress"
	KeyChatHistory  = "chatHistory"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Location sources, in fallback order.
const (
	LocationFromClient   = "client"
	LocationFromHeader   = "header"
	LocationFromLanguage = "language"
	LocationFromDefault  = "default"
)

// UserLocation is the resolved position of the current user.
type UserLocation struct {
	CountryCode string   `json:"country_code"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Source      string   `json:"source"`
}

// VisaSteps is the ordered list of stages shown by the progress bar.
var VisaSteps = []string{
	"eligibility",
	"documents",
	"application",
	"payment",
	"appointment",
	"decision",
}

// VisaProgress tracks where a user stands in the application flow.
type VisaProgress struct {
	CurrentStep int    `json:"current_step"`
	Completed   []bool `json:"completed"`
}

// NewVisaProgress returns a progress positioned on the first step.
func NewVisaProgress() VisaProgress {
	return VisaProgress{Completed: make([]bool, len(VisaSteps))}
}

// Percent returns the share of completed steps, rounded down.
func (p VisaProgress) Percent() int {
	if len(VisaSteps) == 0 {
		return 0
	}
	done := 0
	for _, c := range p.Completed {
		if c {
			done++
		}
	}
	return done * 100 / len(VisaSteps)
}

// ChatRoles accepted in a conversation history.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a single turn of a chatbot conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
