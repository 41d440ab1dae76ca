// Package webui exposes the search settings over HTTP.
// It uses Echo v5 for routing with JWT authentication: clients read the
// current draft with GET /api/settings, edit it with merge-patches via
// PUT /api/settings, and follow live updates over a WebSocket.
package webui

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v5"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"scout/pkg/config"
	"scout/pkg/draft"
	"scout/pkg/logger"
	"scout/pkg/version"
	"scout/pkg/websearch"
)

// Server is the settings HTTP server.
type Server struct {
	echo       *echo.Echo
	httpServer *http.Server
	config     *config.Config
	logger     *logger.Logger
	drafts     *draft.Manager
	startedAt  time.Time
}

// NewServer creates the settings server.
func NewServer(cfg *config.Config, log *logger.Logger, drafts *draft.Manager) *Server {
	s := &Server{
		config:    cfg,
		logger:    log,
		drafts:    drafts,
		startedAt: time.Now(),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	e := echo.New()

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	// Public routes
	e.POST("/api/auth/login", s.handleLogin)

	// Settings WebSocket (auth handled inside via token query param)
	e.GET("/api/settings/ws", s.handleSettingsWS)

	// Protected API routes
	api := e.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		KeyFunc: func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(s.config.Server.JWTSecret), nil
		},
	}))

	api.GET("/settings", s.handleGetSettings)
	api.PUT("/settings", s.handleSaveSettings)
	api.GET("/settings/export", s.handleExportSettings)
	api.GET("/settings/providers", s.handleGetProviders)
	api.POST("/settings/reset", s.handleResetSettings)
	api.GET("/status", s.handleStatus)

	s.echo = e
}

// Start starts the settings server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Settings server starting", zap.String("addr", addr))

	// Use http.Server directly so shutdown is controlled from the fx
	// lifecycle rather than Echo's own signal handling.
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.echo,
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Settings server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully stops the settings server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Settings server stopping")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// --- Auth ---

func (s *Server) handleLogin(c *echo.Context) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if s.config.Server.PasswordHash == "" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "no password set, run: scout set-password"})
	}
	if !config.CheckPassword(s.config.Server.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid password"})
	}

	token, err := s.generateToken()
	if err != nil {
		s.logger.Error("Token generation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "token generation failed"})
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

func (s *Server) generateToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "admin",
		"exp": now.Add(24 * time.Hour).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Server.JWTSecret))
}

func (s *Server) validateToken(tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.config.Server.JWTSecret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}

// --- Settings ---

func (s *Server) handleGetSettings(c *echo.Context) error {
	snap, ok, err := s.drafts.Get(c.Request().Context())
	if err != nil {
		s.logger.Error("Failed to load settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load settings"})
	}
	if !ok {
		snap = s.drafts.DefaultSnapshot()
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"settings":    snap.Search,
		"updated_at":  snap.UpdatedAt,
		"initialized": ok,
	})
}

func (s *Server) handleSaveSettings(c *echo.Context) error {
	var body struct {
		Settings *websearch.Settings `json:"settings"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
	}
	if body.Settings == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "settings required"})
	}

	snap, err := s.drafts.Apply(c.Request().Context(), draft.Patch{Search: body.Settings})
	if err != nil {
		s.logger.Error("Failed to save settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save settings"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"settings":   snap.Search,
		"updated_at": snap.UpdatedAt,
	})
}

func (s *Server) handleResetSettings(c *echo.Context) error {
	if err := s.drafts.Reset(c.Request().Context()); err != nil {
		s.logger.Error("Failed to reset settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to reset settings"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"settings": s.drafts.DefaultSnapshot().Search,
	})
}

func (s *Server) handleExportSettings(c *echo.Context) error {
	snap, ok, err := s.drafts.Get(c.Request().Context())
	if err != nil {
		s.logger.Error("Failed to export settings", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load settings"})
	}
	if !ok {
		snap = s.drafts.DefaultSnapshot()
	}

	export := map[string]interface{}{"search": snap.Search}

	switch c.QueryParam("format") {
	case "", "json":
		c.Response().Header().Set("Content-Disposition", `attachment; filename="scout-settings.json"`)
		return c.JSON(http.StatusOK, export)
	case "yaml":
		data, err := yaml.Marshal(export)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to encode yaml"})
		}
		c.Response().Header().Set("Content-Disposition", `attachment; filename="scout-settings.yaml"`)
		return c.Blob(http.StatusOK, "application/yaml", data)
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unsupported format"})
	}
}

// handleGetProviders describes the provider catalog so clients can render the
// settings form without hardcoding option lists.
func (s *Server) handleGetProviders(c *echo.Context) error {
	type optionJSON struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	toJSON := func(opts []websearch.Option) []optionJSON {
		out := make([]optionJSON, len(opts))
		for i, o := range opts {
			out[i] = optionJSON{Value: o.Value, Label: o.Label}
		}
		return out
	}

	providers := make([]map[string]interface{}, 0, len(websearch.Providers))
	for _, p := range websearch.Providers {
		entry := map[string]interface{}{
			"name":  string(p),
			"label": p.Label(),
		}
		creds := websearch.CredentialFields(p)
		fields := make([]map[string]interface{}, len(creds))
		for i, f := range creds {
			fields[i] = map[string]interface{}{
				"key":   f.Key,
				"label": f.Label,
				"url":   f.URL,
			}
		}
		entry["credential_fields"] = fields
		if depths := websearch.DepthOptions(p); depths != nil {
			entry["depth_options"] = toJSON(depths)
		}
		providers = append(providers, entry)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"providers":          providers,
		"categories":         toJSON(websearch.CategoryOptions()),
		"source_preferences": toJSON(websearch.SourceOptions()),
		"date_ranges":        toJSON(websearch.DateRangeOptions()),
	})
}

func (s *Server) handleStatus(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"version":        version.GetFullVersion(),
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
		"state_backend":  s.config.State.Backend,
	})
}
