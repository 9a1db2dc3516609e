package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/ports"
	"github.com/visago/visa-assistant/internal/i18n"
)

// MaxChatHistory bounds the stored conversation.
const MaxChatHistory = 50

// DefaultCountry is the last step of the location chain.
const DefaultCountry = "FR"

// PreferenceService keeps presentation state in the session.
type PreferenceService struct {
	store          ports.LocalStore
	defaultCountry string
	log            zerolog.Logger
}

// NewPreferenceService returns the service. An empty defaultCountry means
// DefaultCountry.
func NewPreferenceService(store ports.LocalStore, defaultCountry string, log zerolog.Logger) *PreferenceService {
	code, ok := countryCode(defaultCountry)
	if !ok {
		code = DefaultCountry
	}
	return &PreferenceService{
		store:          store,
		defaultCountry: code,
		log:            log.With().Str("component", "preferences").Logger(),
	}
}

func (s *PreferenceService) Theme(ctx context.Context, sid string) (string, error) {
	v, err := s.getString(ctx, sid, domain.KeyTheme)
	if err != nil {
		return "", err
	}
	if v != domain.ThemeDark {
		return domain.ThemeLight, nil
	}
	return v, nil
}

func (s *PreferenceService) SetTheme(ctx context.Context, sid, theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme != domain.ThemeLight && theme != domain.ThemeDark {
		return fmt.Errorf("theme %q: %w", theme, domain.ErrInvalidPreference)
	}
	return s.store.Set(ctx, sid, domain.KeyTheme, []byte(theme))
}

// Language returns the stored language, or the one negotiated from
// acceptLanguage when none was chosen yet.
func (s *PreferenceService) Language(ctx context.Context, sid, acceptLanguage string) (string, error) {
	v, err := s.getString(ctx, sid, domain.KeyLanguage)
	if err != nil {
		return "", err
	}
	if lang, ok := i18n.Normalize(v); ok {
		return lang, nil
	}
	return i18n.Negotiate(acceptLanguage), nil
}

func (s *PreferenceService) SetLanguage(ctx context.Context, sid, lang string) error {
	norm, ok := i18n.Normalize(lang)
	if !ok {
		return fmt.Errorf("language %q: %w", lang, domain.ErrInvalidPreference)
	}
	return s.store.Set(ctx, sid, domain.KeyLanguage, []byte(norm))
}

// Location returns the stored location. The first time, it is resolved
// from hint and persisted.
func (s *PreferenceService) Location(ctx context.Context, sid string, hint ports.LocationHint) (*domain.UserLocation, error) {
	loc, err := loadJSON[domain.UserLocation](ctx, s.store, sid, domain.KeyUserLocation)
	if err == nil && loc.CountryCode != "" {
		return &loc, nil
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	resolved, err := s.resolveLocation(hint)
	if err != nil {
		return nil, err
	}
	if err := saveJSON(ctx, s.store, sid, domain.KeyUserLocation, resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}

// SetLocation resolves hint and replaces the stored location.
func (s *PreferenceService) SetLocation(ctx context.Context, sid string, hint ports.LocationHint) (*domain.UserLocation, error) {
	resolved, err := s.resolveLocation(hint)
	if err != nil {
		return nil, err
	}
	if err := saveJSON(ctx, s.store, sid, domain.KeyUserLocation, resolved); err != nil {
		return nil, err
	}
	s.log.Debug().Str("country", resolved.CountryCode).Str("source", resolved.Source).Msg("location updated")
	return resolved, nil
}

func (s *PreferenceService) resolveLocation(h ports.LocationHint) (*domain.UserLocation, error) {
	if (h.Latitude == nil) != (h.Longitude == nil) {
		return nil, fmt.Errorf("location needs both coordinates: %w", domain.ErrInvalidPreference)
	}
	if h.Latitude != nil && (*h.Latitude < -90 || *h.Latitude > 90 || *h.Longitude < -180 || *h.Longitude > 180) {
		return nil, fmt.Errorf("coordinates out of range: %w", domain.ErrInvalidPreference)
	}

	if h.CountryCode != "" || h.Latitude != nil {
		loc := &domain.UserLocation{
			Latitude:  h.Latitude,
			Longitude: h.Longitude,
			Source:    domain.LocationFromClient,
		}
		if h.CountryCode != "" {
			code, ok := countryCode(h.CountryCode)
			if !ok {
				return nil, fmt.Errorf("country %q: %w", h.CountryCode, domain.ErrInvalidPreference)
			}
			loc.CountryCode = code
		} else {
			// coordinates alone: the country still comes from the rest of the chain
			next, _ := s.resolveLocation(ports.LocationHint{
				HeaderCountry:  h.HeaderCountry,
				AcceptLanguage: h.AcceptLanguage,
			})
			loc.CountryCode = next.CountryCode
		}
		return loc, nil
	}

	// XX and T1 are Cloudflare's unknown and Tor markers.
	if code, ok := countryCode(h.HeaderCountry); ok && code != "XX" && code != "T1" {
		return &domain.UserLocation{CountryCode: code, Source: domain.LocationFromHeader}, nil
	}

	if code, ok := i18n.Region(h.AcceptLanguage); ok {
		return &domain.UserLocation{CountryCode: code, Source: domain.LocationFromLanguage}, nil
	}

	return &domain.UserLocation{CountryCode: s.defaultCountry, Source: domain.LocationFromDefault}, nil
}

func (s *PreferenceService) Progress(ctx context.Context, sid string) (*ports.ProgressView, error) {
	p, err := s.loadProgress(ctx, sid)
	if err != nil {
		return nil, err
	}
	return progressView(p), nil
}

// AdvanceProgress marks the current step done and moves to the next one.
// On the last step it only marks it done.
func (s *PreferenceService) AdvanceProgress(ctx context.Context, sid string) (*ports.ProgressView, error) {
	p, err := s.loadProgress(ctx, sid)
	if err != nil {
		return nil, err
	}
	p.Completed[p.CurrentStep] = true
	if p.CurrentStep < len(domain.VisaSteps)-1 {
		p.CurrentStep++
	}
	return s.saveProgress(ctx, sid, p)
}

// SetProgressStep jumps to step. Earlier steps are marked done, the
// current and later ones are not.
func (s *PreferenceService) SetProgressStep(ctx context.Context, sid string, step int) (*ports.ProgressView, error) {
	if step < 0 || step >= len(domain.VisaSteps) {
		return nil, fmt.Errorf("step %d: %w", step, domain.ErrInvalidStep)
	}
	p := domain.NewVisaProgress()
	p.CurrentStep = step
	for i := 0; i < step; i++ {
		p.Completed[i] = true
	}
	return s.saveProgress(ctx, sid, p)
}

func (s *PreferenceService) ResetProgress(ctx context.Context, sid string) (*ports.ProgressView, error) {
	return s.saveProgress(ctx, sid, domain.NewVisaProgress())
}

func (s *PreferenceService) loadProgress(ctx context.Context, sid string) (domain.VisaProgress, error) {
	p, err := loadJSON[domain.VisaProgress](ctx, s.store, sid, domain.KeyVisaProgress)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewVisaProgress(), nil
	}
	if err != nil {
		return p, err
	}

	// a stored value from an older step list is clamped to the current one
	if len(p.Completed) != len(domain.VisaSteps) {
		completed := make([]bool, len(domain.VisaSteps))
		copy(completed, p.Completed)
		p.Completed = completed
	}
	if p.CurrentStep < 0 {
		p.CurrentStep = 0
	}
	if p.CurrentStep >= len(domain.VisaSteps) {
		p.CurrentStep = len(domain.VisaSteps) - 1
	}
	return p, nil
}

func (s *PreferenceService) saveProgress(ctx context.Context, sid string, p domain.VisaProgress) (*ports.ProgressView, error) {
	if err := saveJSON(ctx, s.store, sid, domain.KeyVisaProgress, p); err != nil {
		return nil, err
	}
	return progressView(p), nil
}

func progressView(p domain.VisaProgress) *ports.ProgressView {
	steps := make([]string, len(domain.VisaSteps))
	copy(steps, domain.VisaSteps)
	return &ports.ProgressView{
		Steps:       steps,
		CurrentStep: p.CurrentStep,
		CurrentName: domain.VisaSteps[p.CurrentStep],
		Completed:   p.Completed,
		Percent:     p.Percent(),
	}
}

func (s *PreferenceService) ChatHistory(ctx context.Context, sid string) ([]domain.ChatMessage, error) {
	h, err := loadJSON[[]domain.ChatMessage](ctx, s.store, sid, domain.KeyChatHistory)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.ChatMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	if h == nil {
		h = []domain.ChatMessage{}
	}
	return h, nil
}

// SetChatHistory replaces the stored history, keeping only the most recent
// MaxChatHistory messages. It returns what was stored.
func (s *PreferenceService) SetChatHistory(ctx context.Context, sid string, history []domain.ChatMessage) ([]domain.ChatMessage, error) {
	if len(history) > MaxChatHistory {
		history = history[len(history)-MaxChatHistory:]
	}
	if history == nil {
		history = []domain.ChatMessage{}
	}
	if err := saveJSON(ctx, s.store, sid, domain.KeyChatHistory, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *PreferenceService) ClearChatHistory(ctx context.Context, sid string) error {
	return s.store.Delete(ctx, sid, domain.KeyChatHistory)
}

func (s *PreferenceService) getString(ctx context.Context, sid, key string) (string, error) {
	b, err := s.store.Get(ctx, sid, key)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func countryCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return "", false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", false
		}
	}
	return s, true
}
