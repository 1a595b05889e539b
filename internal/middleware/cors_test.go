package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/eightball/internal/config"
)

func TestWebSocketCORSCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		env     string
		upgrade string
		origin  string
		want    int
	}{
		{"plain request", "production", "", "", http.StatusOK},
		{"missing origin", "production", "websocket", "", http.StatusBadRequest},
		{"frontend origin", "production", "websocket", "https://tables.example.com", http.StatusOK},
		{"foreign origin", "production", "websocket", "https://evil.example.com", http.StatusForbidden},
		{"dev localhost", "development", "websocket", "http://localhost:3000", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Environment: tc.env, FrontendURL: "https://tables.example.com"}
			r := gin.New()
			r.GET("/ws", WebSocketCORSCheck(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tc.upgrade != "" {
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Upgrade", tc.upgrade)
			}
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("Status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
