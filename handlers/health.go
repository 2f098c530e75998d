package handlers

import (
	"net/http"

	"tailortalk/config"
	"tailortalk/models"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness. It does not probe the calendar or the model.
func HealthHandler(c *gin.Context) {
	name := config.AppConfig.ServiceName
	if name == "" {
		name = "TailorTalk Booking API"
	}
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Service: name})
}
