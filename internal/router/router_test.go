package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"loginapp/internal/cache"
	"loginapp/internal/controllers"
	"loginapp/internal/middleware"
	"loginapp/internal/repository"
	"loginapp/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(auth *middleware.RateLimiter) *gin.Engine {
	svc := service.NewUserService(repository.NewMemoryUserRepository())
	return New(Dependencies{
		Logger:          zerolog.Nop(),
		UserController:  controllers.NewUserController(svc),
		AuthRateLimiter: auth,
	})
}

func newRedisBackedRouter(t *testing.T, mr *miniredis.Miniredis, limit int) *gin.Engine {
	t.Helper()
	counter, err := cache.NewRedisCounter(context.Background(), mr.Addr(), "loginapp:ratelimit:")
	require.NoError(t, err)
	t.Cleanup(func() { counter.Close() })

	svc := service.NewUserService(repository.NewMemoryUserRepository())
	return New(Dependencies{
		Logger:         zerolog.Nop(),
		UserController: controllers.NewUserController(svc),
		SharedLimit:    middleware.SharedRateLimit(counter, "users", limit, time.Minute),
	})
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := send(newTestRouter(nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_Scenarios(t *testing.T) {
	r := newTestRouter(nil)

	rec := send(r, http.MethodPost, "/api/users/register", `{"email":"john@example.com","userPassword":"secure123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"email":"john@example.com","userPassword":"secure123"}`, rec.Body.String())

	rec = send(r, http.MethodPost, "/api/users/login", `{"email":"john@example.com","userPassword":"anything"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", rec.Body.String())

	rec = send(r, http.MethodPost, "/api/users/login", `{"email":"jane@example.com","userPassword":"x"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Invalid credentials", rec.Body.String())

	rec = send(r, http.MethodPost, "/api/users/login", `{"email":null,"userPassword":"secure123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Invalid credentials", rec.Body.String())
}

func TestRouter_OnlyPostRoutes(t *testing.T) {
	rec := send(newTestRouter(nil), http.MethodGet, "/api/users/login", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AuthRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := newTestRouter(middleware.NewRateLimiter(ctx, rate.Every(time.Hour), 1))

	assert.Equal(t, http.StatusOK, send(r, http.MethodPost, "/api/users/login", `{}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, send(r, http.MethodPost, "/api/users/login", `{}`).Code)
	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/health", "").Code)
}

func TestRouter_LoginAnswersFromOwnStoreWithSharedRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	first := newRedisBackedRouter(t, mr, 100)
	second := newRedisBackedRouter(t, mr, 100)

	rec := send(first, http.MethodPost, "/api/users/register", `{"email":"john@example.com","userPassword":"secure123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = send(first, http.MethodPost, "/api/users/login", `{"email":"john@example.com","userPassword":"secure123"}`)
	assert.Equal(t, "Login successful", rec.Body.String())

	// second has an empty store; Redis holds only rate limit counters
	rec = send(second, http.MethodPost, "/api/users/login", `{"email":"john@example.com","userPassword":"secure123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Invalid credentials", rec.Body.String())

	for _, key := range mr.Keys() {
		assert.Contains(t, key, "loginapp:ratelimit:")
	}
}

func TestRouter_SharedLimitAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	first := newRedisBackedRouter(t, mr, 1)
	second := newRedisBackedRouter(t, mr, 1)

	assert.Equal(t, http.StatusOK, send(first, http.MethodPost, "/api/users/login", `{}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, send(second, http.MethodPost, "/api/users/login", `{}`).Code)
}
