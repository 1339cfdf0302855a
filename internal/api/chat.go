package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pantrybot/internal/assistant"
)

// providerUnavailableReply is sent when the completion provider fails
// outright; the conversation stays usable instead of surfacing an internal
// error.
const providerUnavailableReply = "The assistant is unavailable right now. Please try again in a moment."

type chatRequest struct {
	Messages []assistant.Message `json:"messages" binding:"required"`
	TurnID   string              `json:"turnId"`
}

// handleChat runs one conversational turn through the interpreter. Any
// inventory mutations the turn carries are committed as side effects before
// the response is written; there is no transactional grouping across a batch.
func (s *Server) handleChat(c *gin.Context) {
	owner := ownerID(c)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TurnID != "" {
		key := fmt.Sprintf("turn:%s:%s", owner, req.TurnID)
		ok, err := s.guard.Begin(c.Request.Context(), key)
		if err != nil {
			// A cache outage must not take the chat down; the turn runs
			// without dedup.
			log.Printf("idempotency guard error: %v", err)
		} else if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "This message was already processed."})
			return
		}
	}

	result, err := s.interpreter.Interpret(c.Request.Context(), req.Messages, owner)
	if err != nil {
		log.Printf("interpreter error for user %s: %v", owner, err)
		c.JSON(http.StatusOK, gin.H{
			"reply":        providerUnavailableReply,
			"taskOutcomes": []assistant.Outcome{},
		})
		return
	}

	// Fail-fast: the first failed task terminates the turn, and its message
	// is the response. Tasks before it are already committed.
	for _, outcome := range result.TaskOutcomes {
		if !outcome.Success {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":        outcome.Message,
				"taskOutcomes": result.TaskOutcomes,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":        result.ReplyText,
		"taskOutcomes": result.TaskOutcomes,
	})
}
