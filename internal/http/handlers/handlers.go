package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentassist/backend/internal/db"
	"github.com/dentassist/backend/internal/dialog"
	"github.com/dentassist/backend/internal/directory"
	"github.com/dentassist/backend/internal/metrics"
	"github.com/dentassist/backend/internal/models"
	"github.com/dentassist/backend/internal/nlu"
	"github.com/dentassist/backend/internal/session"
)

type Handler struct {
	Store     *db.Store
	Sessions  session.Store
	Pipeline  nlu.Pipeline
	Dialog    *dialog.Orchestrator
	Directory directory.Directory
	Validator *validator.Validate
	Logger    zerolog.Logger
	Tenant    models.Tenant

	// One update in flight per session id.
	sessionLocks sync.Map
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" validate:"required,max=2000"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email" validate:"omitempty,email"`
}

type ChatReply struct {
	SessionID string              `json:"session_id"`
	State     string              `json:"state"`
	Response  models.ChatResponse `json:"response"`
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.Store.Ping(ctx); err != nil {
			writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Send a chat message
// @Description Runs one conversational turn: NLU over the patient message, then the dialogue state machine
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "patient message"
// @Success 200 {object} ChatReply
// @Failure 400 {object} map[string]any
// @Router /api/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "message is required and limited to 2000 characters", err.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	unlock := h.lockSession(sessionID)
	defer unlock()

	ctx := c.Request.Context()
	cctx, err := h.Sessions.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			writeError(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to load session", err.Error())
			return
		}
		cctx = h.newContext(sessionID, req)
		metrics.ObserveSessionStart()
	}

	res := h.Pipeline.Analyze(req.Message, cctx)
	resp := h.Dialog.HandleTurn(ctx, cctx, res)
	metrics.ObserveTurn(res.Intent, resp.Escalate)

	if err := h.Sessions.Save(ctx, cctx); err != nil {
		h.Logger.Error().Err(err).Str("session_id", sessionID).Msg("session save failed")
		writeError(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to persist session", err.Error())
		return
	}

	c.JSON(http.StatusOK, ChatReply{
		SessionID: sessionID,
		State:     cctx.Conversation.State,
		Response:  resp,
	})
}

// @Summary List practitioners
// @Tags directory
// @Produce json
// @Success 200 {array} models.Practitioner
// @Router /api/practitioners [get]
func (h *Handler) PractitionersList(c *gin.Context) {
	team, err := h.Directory.Practitioners(c.Request.Context(), h.Tenant.ID)
	if err != nil {
		writeError(c, http.StatusBadGateway, "DIRECTORY_ERROR", "Directory unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, team)
}

// @Summary Cabinet info
// @Tags directory
// @Produce json
// @Success 200 {object} models.Cabinet
// @Router /api/cabinet [get]
func (h *Handler) CabinetInfo(c *gin.Context) {
	cab, err := h.Directory.Cabinet(c.Request.Context(), h.Tenant.ID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Cabinet not found", nil)
			return
		}
		writeError(c, http.StatusBadGateway, "DIRECTORY_ERROR", "Directory unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, cab)
}

func (h *Handler) SessionGet(c *gin.Context) {
	cctx, err := h.Sessions.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Session not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to load session", err.Error())
		return
	}
	c.JSON(http.StatusOK, cctx)
}

func (h *Handler) SessionDelete(c *gin.Context) {
	if err := h.Sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to delete session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) newContext(sessionID string, req ChatRequest) *models.ConversationContext {
	now := time.Now().UTC()
	return &models.ConversationContext{
		SessionID: sessionID,
		User: models.User{
			ID:    req.UserID,
			Role:  "patient",
			Email: req.UserEmail,
		},
		Tenant: h.Tenant,
		Conversation: models.Conversation{
			State:          models.StateActive,
			CollectedSlots: map[string]string{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (h *Handler) lockSession(id string) func() {
	v, _ := h.sessionLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
