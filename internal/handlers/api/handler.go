// Package api is the device-facing HTTP and WebSocket surface
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/KirkDiggler/secretmafia/internal/common/uuid"
	"github.com/KirkDiggler/secretmafia/internal/repositories/feed"
	"github.com/KirkDiggler/secretmafia/internal/services/game"
	"github.com/KirkDiggler/secretmafia/internal/services/history"
	"github.com/KirkDiggler/secretmafia/internal/services/messaging"
	"github.com/KirkDiggler/secretmafia/internal/services/roles"
	"github.com/KirkDiggler/secretmafia/internal/services/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// DeviceIDHeader carries the stable identity of the calling device
	DeviceIDHeader = "X-Device-ID"

	// deviceIDQuery is accepted on WebSocket upgrades, where browsers cannot set headers
	deviceIDQuery = "device_id"

	deviceIDKey = "device_id"
)

// Config holds configuration for the API handler
type Config struct {
	SessionService session.Service
	GameService    game.Service
	HistoryService history.Service
	Messaging      messaging.Service

	// Subscriber feeds the WebSocket event streams
	Subscriber feed.Subscriber

	// UUIDGenerator issues device IDs to devices that have none
	UUIDGenerator uuid.UUID

	// AllowedOrigins for CORS; empty allows every origin
	AllowedOrigins []string

	// PublicURL prefixes the join link encoded in QR codes; the bare code is used when empty
	PublicURL string

	// HidePhonesDuration is passed to every device stream
	HidePhonesDuration time.Duration

	// Logger is optional
	Logger *zap.Logger
}

// Handler serves the API
type Handler struct {
	sessionService     session.Service
	gameService        game.Service
	historyService     history.Service
	messaging          messaging.Service
	subscriber         feed.Subscriber
	uuidGenerator      uuid.UUID
	allowedOrigins     []string
	publicURL          string
	hidePhonesDuration time.Duration
	upgrader           websocket.Upgrader
	logger             *zap.Logger
}

// New creates a new API handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.HistoryService == nil {
		return nil, errors.New("history service cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.Subscriber == nil {
		return nil, errors.New("subscriber cannot be nil")
	}

	if cfg.UUIDGenerator == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Handler{
		sessionService:     cfg.SessionService,
		gameService:        cfg.GameService,
		historyService:     cfg.HistoryService,
		messaging:          cfg.Messaging,
		subscriber:         cfg.Subscriber,
		uuidGenerator:      cfg.UUIDGenerator,
		allowedOrigins:     cfg.AllowedOrigins,
		publicURL:          cfg.PublicURL,
		hidePhonesDuration: cfg.HidePhonesDuration,
		logger:             logger.Named("api"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h, nil
}

// Router builds the gin engine with every route
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.requestLogger())

	origins := h.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", DeviceIDHeader},
		ExposeHeaders: []string{"Content-Length", DeviceIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/codes/:code/qr", h.joinCodeQR)

	api := router.Group("/", h.deviceID())
	{
		api.POST("/rooms", h.createRoom)
		api.POST("/rooms/join", h.joinRoom)
		api.GET("/rooms/:id", h.getRoom)
		api.PATCH("/rooms/:id/settings", h.updateSettings)
		api.DELETE("/rooms/:id/players/me", h.leaveRoom)

		api.POST("/rooms/:id/start", h.startGame)
		api.GET("/rooms/:id/game", h.getGame)
		api.POST("/rooms/:id/ready", h.markReady)
		api.POST("/rooms/:id/votes", h.castVote)
		api.POST("/rooms/:id/night-intro/complete", h.completeNightIntro)
		api.POST("/rooms/:id/night", h.resolveNight)
		api.POST("/rooms/:id/voting/start", h.startVoting)
		api.POST("/rooms/:id/voting/resolve", h.resolveVotes)
		api.GET("/rooms/:id/events", h.events)

		api.GET("/history", h.getHistory)
		api.DELETE("/history", h.clearHistory)
		api.GET("/history/stats", h.getStats)
	}

	return router
}

// deviceID reads the caller's device ID, issuing one when it is missing
func (h *Handler) deviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(DeviceIDHeader)
		if deviceID == "" {
			deviceID = c.Query(deviceIDQuery)
		}
		if deviceID == "" {
			deviceID = h.uuidGenerator.NewUUID()
		}
		c.Header(DeviceIDHeader, deviceID)
		c.Set(deviceIDKey, deviceID)
		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func deviceIDFrom(c *gin.Context) string {
	return c.GetString(deviceIDKey)
}

// statusFor classifies a service error into an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrInvalidDeviceID),
		errors.Is(err, session.ErrInvalidPlayerName),
		errors.Is(err, session.ErrInvalidAvatar),
		errors.Is(err, session.ErrInvalidGameMode),
		errors.Is(err, session.ErrInvalidCode),
		errors.Is(err, session.ErrInvalidMafiaCount),
		errors.Is(err, session.ErrInvalidTimer),
		errors.Is(err, roles.ErrInvalidGameMode),
		errors.Is(err, roles.ErrNotEnoughPlayers),
		errors.Is(err, roles.ErrInvalidMafiaCount),
		errors.Is(err, game.ErrInvalidTarget),
		errors.Is(err, history.ErrInvalidDeviceID):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrRoomNotFound),
		errors.Is(err, game.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNotInRoom),
		errors.Is(err, game.ErrNotInRoom),
		errors.Is(err, game.ErrNotHost),
		errors.Is(err, game.ErrPlayerEliminated):
		return http.StatusForbidden
	case errors.Is(err, session.ErrNameTaken),
		errors.Is(err, session.ErrRoomNotWaiting),
		errors.Is(err, game.ErrGameAlreadyStarted),
		errors.Is(err, game.ErrGameNotStarted),
		errors.Is(err, game.ErrInvalidPhase),
		errors.Is(err, game.ErrInvalidTransition),
		errors.Is(err, game.ErrAlreadyAdvanced),
		errors.Is(err, game.ErrAlreadyVoted),
		errors.Is(err, game.ErrVotingIncomplete),
		errors.Is(err, game.ErrRosterChanged),
		errors.Is(err, history.ErrGameNotComplete):
		return http.StatusConflict
	case errors.Is(err, session.ErrCodeUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes a service error as a user-facing message
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("device_id", deviceIDFrom(c)),
			zap.Error(err))
	}

	body := gin.H{"error": "Error", "message": err.Error()}
	if output, msgErr := h.messaging.GetErrorMessage(c.Request.Context(), &messaging.GetErrorMessageInput{Err: err}); msgErr == nil {
		body["error"] = output.Title
		body["message"] = output.Message
	}
	c.JSON(status, body)
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
}
