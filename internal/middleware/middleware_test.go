package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
)

const secret = "middleware-test-secret"

func signed(t *testing.T, claims LedgerClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func claimsFor(tenant, subject, issuer string, exp time.Time) LedgerClaims {
	return LedgerClaims{
		TenantID: tenant,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/who", AuthMiddleware(secret, "ledger"), func(c *gin.Context) {
		actor, _ := GetActorFromContext(c)
		tenant, _ := GetTenantIDFromContext(c)
		c.String(http.StatusOK, tenant+"/"+actor)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	future := time.Now().Add(time.Hour)
	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{name: "valid", header: "Bearer " + signed(t, claimsFor("t1", "alice", "ledger", future)), code: http.StatusOK, body: "t1/alice"},
		{name: "missing header", header: "", code: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", code: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signed(t, claimsFor("t1", "alice", "ledger", time.Now().Add(-time.Hour))), code: http.StatusUnauthorized},
		{name: "wrong issuer", header: "Bearer " + signed(t, claimsFor("t1", "alice", "other", future)), code: http.StatusUnauthorized},
		{name: "no tenant", header: "Bearer " + signed(t, claimsFor("", "alice", "ledger", future)), code: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.jwt", code: http.StatusUnauthorized},
	}
	r := authRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func limitedRouter(l *limiter.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimit(l), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	return w
}

func TestRateLimit_Memory(t *testing.T) {
	l, err := NewRateLimiter("2-M", nil)
	require.NoError(t, err)
	r := limitedRouter(l)

	assert.Equal(t, http.StatusNoContent, hit(r).Code)
	w := hit(r)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, hit(r).Code)
}

func TestRateLimit_RedisSharedAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	first, err := NewRateLimiter("1-M", client)
	require.NoError(t, err)
	second, err := NewRateLimiter("1-M", client)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, hit(limitedRouter(first)).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(limitedRouter(second)).Code)
}

func TestNewRateLimiter_BadFormat(t *testing.T) {
	_, err := NewRateLimiter("lots", nil)
	assert.Error(t, err)
}

func TestIssueToken(t *testing.T) {
	tok, err := IssueToken(secret, "ledger", "t9", "ops", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	authRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "t9/ops", w.Body.String())

	_, err = IssueToken(secret, "ledger", "", "ops", time.Minute)
	assert.Error(t, err)
}
