package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-kiezmap/dashboard"
	"go-kiezmap/session"
	"go-kiezmap/types"
)

const (
	TabMap   = "map"
	TabBoard = "board"
	TabChat  = "chat"
)

// ShowPage recomputes the whole dashboard for the session and renders it with tab selected.
func ShowPage(c *gin.Context, svc *dashboard.Service, sessions *session.Store, tab string) {
	st := sessionState(c, sessions)
	page := svc.View(c.Request.Context(), st)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Page": page,
		"Tab":  tab,
	})
}

// Search moves the map to the geocoded form value "q".
func Search(c *gin.Context, svc *dashboard.Service, sessions *session.Store) {
	st := sessionState(c, sessions)
	svc.Search(c.Request.Context(), st, c.PostForm("q"))
	c.Redirect(http.StatusSeeOther, "/")
}

// SetLayers replaces the layer toggles with the submitted checkboxes. Missing boxes are off.
func SetLayers(c *gin.Context, svc *dashboard.Service, sessions *session.Store) {
	var layers types.LayerToggles
	if err := c.ShouldBind(&layers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc.ToggleLayers(sessionState(c, sessions), layers)
	c.Redirect(http.StatusSeeOther, "/")
}
