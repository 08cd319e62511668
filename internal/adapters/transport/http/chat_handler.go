package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/personalgpt/backend/internal/adapters/transport/http/middleware"
	appsvc "github.com/personalgpt/backend/internal/app/auth/service"
)

// ChatHandler carries the conversation/chat surface. The routes are wired
// and gated but answer placeholders until the LLM pipeline lands.
type ChatHandler struct {
	svc appsvc.Service
}

func NewChatHandler(svc appsvc.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) Register(r *gin.Engine) {
	conv := r.Group("/conversations", middleware.RequireUser(h.svc))
	conv.GET("", h.listConversations)
	conv.GET("/:id", h.getConversation)
	conv.DELETE("/:id", h.deleteConversation)
	conv.POST("/:id/export", h.exportConversation)

	chat := r.Group("/chat", middleware.RequireUser(h.svc))
	chat.POST("/message", h.sendMessage)
	chat.GET("/stream", h.streamMessage)
}

func (h *ChatHandler) listConversations(c *gin.Context) {
	// TODO: read conversations for the current user from the store
	c.JSON(http.StatusOK, []gin.H{})
}

func (h *ChatHandler) getConversation(c *gin.Context) {
	// TODO: load the conversation with its messages
	c.JSON(http.StatusOK, gin.H{
		"id":       c.Param("id"),
		"title":    "Sample conversation",
		"messages": []gin.H{},
	})
}

func (h *ChatHandler) deleteConversation(c *gin.Context) {
	// TODO: delete the conversation and its messages
	c.JSON(http.StatusOK, gin.H{"message": "Conversation deleted"})
}

func (h *ChatHandler) exportConversation(c *gin.Context) {
	// TODO: export as JSON or PDF depending on ?format=
	c.JSON(http.StatusOK, gin.H{"message": "Export functionality"})
}

func (h *ChatHandler) sendMessage(c *gin.Context) {
	var body struct {
		Message        string `json:"message"`
		ConversationID string `json:"conversation_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// TODO: run the message through the LLM pipeline
	convID := body.ConversationID
	if convID == "" {
		convID = "new"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "AI response placeholder",
		"conversation_id": convID,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *ChatHandler) streamMessage(c *gin.Context) {
	// TODO: stream the response over SSE
	c.JSON(http.StatusOK, gin.H{"status": "streaming"})
}
