package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-kiezmap/dashboard"
	"go-kiezmap/session"
)

// GetView returns the same recomputed page the HTML views render.
func GetView(c *gin.Context, svc *dashboard.Service, sessions *session.Store) {
	c.JSON(http.StatusOK, svc.View(c.Request.Context(), sessionState(c, sessions)))
}

// GetCrime returns the normalized crime table.
func GetCrime(c *gin.Context, svc *dashboard.Service) {
	table := svc.Crime(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"rows":  table.Rows,
		"count": len(table.Rows),
	})
}

// GetBoundaries returns the district geometry joined with the crime totals.
func GetBoundaries(c *gin.Context, svc *dashboard.Service) {
	res := svc.JoinedBoundaries(c.Request.Context())
	if !res.Live {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "district boundaries unavailable",
			"details": res.ReasonText(),
		})
		return
	}
	c.JSON(http.StatusOK, res.Value)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
