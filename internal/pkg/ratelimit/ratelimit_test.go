package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAllow_WithinLimit(t *testing.T) {
	rl := New(3, time.Minute)

	require.True(t, rl.Allow("voter1"))
	require.True(t, rl.Allow("voter1"))
	require.True(t, rl.Allow("voter1"))
	require.False(t, rl.Allow("voter1"))

	// A different key has its own window
	require.True(t, rl.Allow("voter2"))
}

func TestAllow_WindowExpiry(t *testing.T) {
	rl := New(1, 10*time.Millisecond)

	require.True(t, rl.Allow("voter1"))
	require.False(t, rl.Allow("voter1"))

	time.Sleep(15 * time.Millisecond)
	require.True(t, rl.Allow("voter1"))
}

func TestRemaining(t *testing.T) {
	rl := New(2, time.Minute)

	require.Equal(t, 2, rl.Remaining("voter1"))
	rl.Allow("voter1")
	require.Equal(t, 1, rl.Remaining("voter1"))
	rl.Allow("voter1")
	require.Equal(t, 0, rl.Remaining("voter1"))
}

func TestUserBasedMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := New(1, time.Minute)
	r := gin.New()
	r.POST("/votes", UserBasedMiddleware(rl), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/votes", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/votes", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, 429, w.Code)
}
