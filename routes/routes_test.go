package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tailortalk/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const uiOrigin = "http://ui.local"

func testBundle(hit map[string]bool) *handlers.HandlerBundle {
	return &handlers.HandlerBundle{
		ChatHandler:   func(c *gin.Context) { hit["chat"] = true; c.Status(http.StatusOK) },
		HealthHandler: func(c *gin.Context) { hit["health"] = true; c.Status(http.StatusOK) },
	}
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	hit := map[string]bool{}
	RegisterRoutes(r, testBundle(hit))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req.Header.Set("Origin", uiOrigin)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.True(t, hit["chat"])
	assert.True(t, hit["health"])
}

func TestRejectedRequestsCarryCORSHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	hit := map[string]bool{}
	reject := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Rate limit exceeded. Try again later."})
	}
	RegisterRoutes(r, testBundle(hit), reject)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req.Header.Set("Origin", uiOrigin)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, hit["chat"])
}
