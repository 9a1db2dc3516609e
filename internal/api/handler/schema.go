package handler

import (
	"time"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// --- auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type authResponse struct {
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
	Offline bool         `json:"offline"`
}

type verifyResponse struct {
	Valid bool         `json:"valid"`
	User  *domain.User `json:"user"`
}

// --- currency ---

type convertResponse struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

type currenciesResponse struct {
	Currencies []string `json:"currencies"`
}

// --- community ---

type createPostRequest struct {
	Title       string   `json:"title"        validate:"required,max=200"`
	Content     string   `json:"content"      validate:"required,max=10000"`
	CountryCode string   `json:"country_code" validate:"omitempty,len=2"`
	Tags        []string `json:"tags"         validate:"max=10,dive,max=40"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type reactRequest struct {
	Type string `json:"type" validate:"omitempty,oneof=like dislike"`
}

// --- notifications ---

type unreadCountResponse struct {
	Count int `json:"count"`
}

// --- preferences ---

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

type themeResponse struct {
	Theme string `json:"theme"`
}

type languageRequest struct {
	Language string `json:"language" validate:"required,oneof=fr en ar"`
}

type languageResponse struct {
	Language string `json:"language"`
}

type locationRequest struct {
	CountryCode string   `json:"country_code" validate:"omitempty,len=2"`
	Latitude    *float64 `json:"latitude"     validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude"    validate:"omitempty,gte=-180,lte=180"`
}

type progressStepRequest struct {
	Step *int `json:"step" validate:"required"`
}

type chatMessage struct {
	Role    string `json:"role"    validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

type chatHistoryRequest struct {
	History []chatMessage `json:"history" validate:"dive"`
}

type chatHistoryResponse struct {
	History []domain.ChatMessage `json:"history"`
}

// --- chat ---

type chatRequest struct {
	History []chatMessage `json:"history" validate:"required,min=1,dive"`
}

type chatResponse struct {
	Content string `json:"content"`
}

// --- documents ---

type uploadResponse struct {
	Message string            `json:"message"`
	Files   []domain.Document `json:"files"`
}

type documentsResponse struct {
	Documents []domain.Document `json:"documents"`
}

// --- status ---

type statusResponse struct {
	Online    bool      `json:"online"`
	CheckedAt time.Time `json:"checked_at"`
}

func toChatMessages(in []chatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(in))
	for i, m := range in {
		out[i] = domain.ChatMessage{Role: m.Role, Content: m.Content}
	}
	return out
}
