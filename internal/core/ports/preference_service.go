package ports

import (
	"context"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// LocationHint carries every source the location chain may draw from.
type LocationHint struct {
	CountryCode    string   // explicit choice from the client
	Latitude       *float64 // explicit coordinates from the client
	Longitude      *float64
	HeaderCountry  string // CF-IPCountry or X-Country-Code
	AcceptLanguage string
}

// ProgressView is the visa progress plus its derived fields.
type ProgressView struct {
	Steps       []string `json:"steps"`
	CurrentStep int      `json:"current_step"`
	CurrentName string   `json:"current_name"`
	Completed   []bool   `json:"completed"`
	Percent     int      `json:"percent"`
}

type PreferenceService interface {
	Theme(ctx context.Context, sessionID string) (string, error)
	SetTheme(ctx context.Context, sessionID, theme string) error
	Language(ctx context.Context, sessionID, acceptLanguage string) (string, error)
	SetLanguage(ctx context.Context, sessionID, lang string) error

	Location(ctx context.Context, sessionID string, hint LocationHint) (*domain.UserLocation, error)
	SetLocation(ctx context.Context, sessionID string, hint LocationHint) (*domain.UserLocation, error)

	Progress(ctx context.Context, sessionID string) (*ProgressView, error)
	AdvanceProgress(ctx context.Context, sessionID string) (*ProgressView, error)
	SetProgressStep(ctx context.Context, sessionID string, step int) (*ProgressView, error)
	ResetProgress(ctx context.Context, sessionID string) (*ProgressView, error)

	ChatHistory(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	SetChatHistory(ctx context.Context, sessionID string, history []domain.ChatMessage) ([]domain.ChatMessage, error)
	ClearChatHistory(ctx context.Context, sessionID string) error
}
