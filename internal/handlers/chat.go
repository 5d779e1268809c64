package handlers

import (
	"errors"
	"net/http"

	"github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	"github.com/Arhamsiaf65/CityInsights/internal/chatbot"
	"github.com/Arhamsiaf65/CityInsights/internal/session"
	"github.com/gin-gonic/gin"
)

// ChatRequest is the chat endpoint payload. Message may be empty.
type ChatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
}

// Chat answers one chatbot message.
// POST /api/v1/chat
func (h *Handlers) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	// A token always names the caller; the body id only serves anonymous chat.
	callerID := req.UserID
	if id, _, ok := caller(c); ok {
		callerID = id.String()
	}

	history, ok := h.loadHistory(c, req.SessionID)
	if !ok {
		return
	}

	reply, err := h.chat.Reply(ctx, chatbot.Request{
		Message:  req.Message,
		CallerID: callerID,
		History:  history,
	})
	if err != nil {
		h.logger.Error("Chatbot reply failed",
			logger.Error(err),
			logger.String("intent", string(reply.Intent)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": reply.Text})
		return
	}

	if req.SessionID != "" && h.sessions != nil {
		appendErr := h.sessions.Append(ctx, req.SessionID,
			chatbot.Turn{Speaker: chatbot.SpeakerUser, Text: req.Message},
			chatbot.Turn{Speaker: chatbot.SpeakerAssistant, Text: reply.Text},
		)
		if appendErr != nil {
			h.logger.Warn("Failed to store chat turn", logger.Error(appendErr))
		}
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply.Text})
}

// loadHistory returns the session's turns. Store failures degrade to no
// history; a malformed id answers 400.
func (h *Handlers) loadHistory(c *gin.Context, sessionID string) ([]chatbot.Turn, bool) {
	if sessionID == "" || h.sessions == nil {
		return nil, true
	}
	history, err := h.sessions.Load(c.Request.Context(), sessionID)
	if errors.Is(err, session.ErrInvalidSessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}
	if err != nil {
		h.logger.Warn("Failed to load chat history", logger.Error(err))
		return nil, true
	}
	return history, true
}

// ClearChatSession forgets a conversation.
// DELETE /api/v1/chat/sessions/:id
func (h *Handlers) ClearChatSession(c *gin.Context) {
	if h.sessions == nil {
		c.Status(http.StatusNoContent)
		return
	}
	err := h.sessions.Clear(c.Request.Context(), c.Param("id"))
	if errors.Is(err, session.ErrInvalidSessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	if err != nil {
		h.handleError(c, err, "session", "clear")
		return
	}
	c.Status(http.StatusNoContent)
}
