package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the endpoint handlers passed to route registration.
type HandlerBundle struct {
	ChatHandler   gin.HandlerFunc
	HealthHandler gin.HandlerFunc
}
