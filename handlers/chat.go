package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-kiezmap/dashboard"
	"go-kiezmap/session"
)

// ChatForm handles the chat panel input and goes back to the history.
func ChatForm(c *gin.Context, svc *dashboard.Service, sessions *session.Store) {
	svc.Chat(c.Request.Context(), sessionState(c, sessions), c.PostForm("prompt"))
	c.Redirect(http.StatusSeeOther, "/chat")
}

// Chat is the JSON variant of ChatForm.
func Chat(c *gin.Context, svc *dashboard.Service, sessions *session.Store) {
	var request struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer := svc.Chat(c.Request.Context(), sessionState(c, sessions), request.Prompt)
	if errors.Is(answer.Reason, dashboard.ErrEmptyPrompt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": answer.ReasonText()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"answer": answer.Value,
		"live":   answer.Live,
	})
}
