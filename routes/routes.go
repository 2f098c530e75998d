package routes

import (
	"time"

	"tailortalk/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational booking endpoint.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/chat", hb.ChatHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes installs CORS, then the given middleware, then every endpoint.
// Middleware that may reject requests, such as rate limiting, goes in mw so
// its responses still carry CORS headers.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, mw ...gin.HandlerFunc) {
	// The chat UI may be served from anywhere.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(mw...)

	RegisterChatRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
