package controller

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kruzhok/knowledge-hub/logger"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	os.Setenv("KHUB_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestSafeNextURL(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "http://club.example/login", nil)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty falls back", "", "/"},
		{"relative path passes", "/articles/5", "/articles/5"},
		{"relative path keeps query", "/articles/5?page=2", "/articles/5?page=2"},
		{"same-origin absolute is reduced to a path", "http://club.example/articles/7", "/articles/7"},
		{"foreign host is rejected", "https://evil.example/x", "/"},
		{"protocol-relative is rejected", "//evil.example/x", "/"},
		{"bare word is rejected", "evil.example/x", "/"},
		{"garbage is rejected", "http://%zz", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeNextURL(c, tt.raw))
		})
	}
}
