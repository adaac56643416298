package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-kiezmap/dashboard"
	"go-kiezmap/session"
)

func AddRecommendation(c *gin.Context, svc *dashboard.Service, sessions *session.Store) {
	var form struct {
		Place       string `form:"place"`
		Description string `form:"description"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc.Recommend(sessionState(c, sessions), form.Place, form.Description)
	c.Redirect(http.StatusSeeOther, "/board")
}

func AddReply(c *gin.Context, svc *dashboard.Service, sessions *session.Store) {
	st := sessionState(c, sessions)
	err := svc.Reply(st, c.Param("id"), c.PostForm("text"))
	if errors.Is(err, session.ErrRecommendationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/board")
}
