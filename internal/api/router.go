package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/visago/visa-assistant/internal/api/handler"
	"github.com/visago/visa-assistant/internal/api/middleware"
	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/fallback"
	"github.com/visago/visa-assistant/internal/core/ports"
	"github.com/visago/visa-assistant/internal/i18n"
)

// Deps is everything the HTTP layer needs, wired by main.
type Deps struct {
	Log       zerolog.Logger
	JWTSecret string
	BodyLimit string
	Origins   []string

	Probe         fallback.Prober
	Auth          ports.AuthService
	Countries     ports.CountryService
	Currency      ports.CurrencyService
	Community     ports.CommunityService
	Notifications ports.NotificationService
	Preferences   ports.PreferenceService
	Chat          ports.ChatService
	Documents     ports.DocumentService

	// Ready lists the dependencies checked by /health/ready.
	Ready map[string]handler.Pinger

	// Registry receives the HTTP request metrics. Nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, sessionLanguage(d.Preferences))

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.Origins,
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, handler.HeaderAcceptLanguage,
		},
	}))
	if d.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(d.BodyLimit))
	}
	var (
		reg    prometheus.Registerer = prometheus.DefaultRegisterer
		gather prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		reg, gather = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "visago",
		Registerer: reg,
	}))

	auth := middleware.Auth(d.JWTSecret, d.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Ops (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Ready, d.Probe).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gather}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/status", handler.NewStatusHandler(d.Probe).Status)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.GET("/auth/verify", authHandler.Verify, auth)
	e.POST("/auth/logout", authHandler.Logout, auth)

	// --- Reference data ---
	countryHandler := handler.NewCountryHandler(d.Countries)
	e.GET("/countries", countryHandler.List)
	e.GET("/countries/:code", countryHandler.Get)

	currencyHandler := handler.NewCurrencyHandler(d.Currency)
	e.GET("/currency", currencyHandler.List)
	e.GET("/currency/convert", currencyHandler.Convert)

	// --- Community ---
	communityHandler := handler.NewCommunityHandler(d.Community)
	e.GET("/community", communityHandler.List)
	e.POST("/community", communityHandler.Create, auth)
	e.PATCH("/community/:id/status", communityHandler.UpdateStatus, auth, adminOnly)
	e.POST("/community/:id/likes", communityHandler.React, auth)
	e.DELETE("/community/:id", communityHandler.Delete, auth, adminOnly)

	// --- Notifications ---
	notificationHandler := handler.NewNotificationHandler(d.Notifications)
	notifications := e.Group("/notifications", auth)
	notifications.GET("", notificationHandler.List)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.PATCH("/read-all", notificationHandler.MarkAllRead)
	notifications.PATCH("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.Delete)

	// --- Preferences ---
	prefHandler := handler.NewPreferenceHandler(d.Preferences)
	prefs := e.Group("/preferences", auth)
	prefs.GET("/theme", prefHandler.GetTheme)
	prefs.PUT("/theme", prefHandler.SetTheme)
	prefs.GET("/language", prefHandler.GetLanguage)
	prefs.PUT("/language", prefHandler.SetLanguage)
	prefs.GET("/location", prefHandler.GetLocation)
	prefs.PUT("/location", prefHandler.SetLocation)
	prefs.GET("/progress", prefHandler.GetProgress)
	prefs.PUT("/progress", prefHandler.SetProgressStep)
	prefs.POST("/progress/advance", prefHandler.AdvanceProgress)
	prefs.POST("/progress/reset", prefHandler.ResetProgress)
	prefs.GET("/chat-history", prefHandler.GetChatHistory)
	prefs.PUT("/chat-history", prefHandler.SetChatHistory)
	prefs.DELETE("/chat-history", prefHandler.ClearChatHistory)

	// --- Chat ---
	e.POST("/chat", handler.NewChatHandler(d.Chat).Reply)

	// --- Documents ---
	documentHandler := handler.NewDocumentHandler(d.Documents)
	docs := e.Group("/documents", auth)
	docs.POST("/upload", documentHandler.Upload)
	docs.GET("/list", documentHandler.List)
	docs.GET("/download/:filename", documentHandler.Download)
	docs.DELETE("/:filename", documentHandler.Delete)

	return e
}

// sessionLanguage localizes errors with the session language once Auth has
// run, and with Accept-Language otherwise.
func sessionLanguage(prefs ports.PreferenceService) LanguageFunc {
	return func(c echo.Context) string {
		accept := c.Request().Header.Get(handler.HeaderAcceptLanguage)
		sid, _ := c.Get(middleware.CtxSessionID).(string)
		if prefs == nil || strings.TrimSpace(sid) == "" {
			return i18n.Negotiate(accept)
		}
		lang, err := prefs.Language(c.Request().Context(), sid, accept)
		if err != nil {
			return i18n.Negotiate(accept)
		}
		return lang
	}
}
