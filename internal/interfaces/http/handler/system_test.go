package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping() error { return p.err }

func newSystemEngine(db HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewSystemHandler(db, "1.2.3").RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestSystemHandler(t *testing.T) {
	t.Run("health always reports ok", func(t *testing.T) {
		engine := newSystemEngine(fakePinger{err: errors.New("down")})

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "1.2.3")
	})

	t.Run("ready reflects database reachability", func(t *testing.T) {
		engine := newSystemEngine(fakePinger{})
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		engine = newSystemEngine(fakePinger{err: errors.New("down")})
		rec = httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
