package handlers

import (
	"net/http/httptest"
	"testing"

	"slotwise/middleware"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestRequestLoggerFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if got := requestLogger(c); got != utils.GetLogger() {
		t.Fatal("expected the global logger without request middleware")
	}
	if requestLogger(c) != requestLogger(c) {
		t.Fatal("fallback must not build a new logger per call")
	}

	scoped := zap.NewNop().With(zap.String("requestId", "req-1"))
	c.Set(middleware.LoggerKey, scoped)
	if got := requestLogger(c); got != scoped {
		t.Fatal("expected the request-scoped logger")
	}
}
