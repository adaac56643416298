package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-kiezmap/dashboard"
)

// Geocode resolves ?location= within the city. It does not move any session's map.
func Geocode(c *gin.Context, svc *dashboard.Service) {
	locationParam := c.Query("location")
	if locationParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required"})
		return
	}

	type LocationResponse struct {
		Location  string  `json:"location"`
		Found     bool    `json:"found"`
		Live      bool    `json:"live"`
		Label     string  `json:"label,omitempty"`
		Latitude  float64 `json:"latitude,omitempty"`
		Longitude float64 `json:"longitude,omitempty"`
	}

	res := svc.Locate(c.Request.Context(), locationParam)
	responseData := LocationResponse{Location: locationParam, Live: res.Live}
	if res.Value != nil {
		responseData.Found = true
		responseData.Label = res.Value.Label
		responseData.Latitude = res.Value.Lat
		responseData.Longitude = res.Value.Lng
	}
	c.JSON(http.StatusOK, responseData)
}
