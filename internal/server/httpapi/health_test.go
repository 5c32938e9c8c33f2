package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func serveHealth(t *testing.T, h http.Handler) (*httptest.ResponseRecorder, healthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec, decode[healthResponse](t, rec)
}

func TestHealth_OK(t *testing.T) {
	rec, body := serveHealth(t, newHealthHandler(fakePinger{}, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, map[string]string{"database": "ok"}, body.Checks)
}

func TestHealth_DatabaseDown(t *testing.T) {
	rec, body := serveHealth(t, newHealthHandler(fakePinger{err: errors.New("disk gone")}, nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "down", body.Checks["database"])
	assert.NotContains(t, rec.Body.String(), "disk gone")
}

func TestHealth_RedisDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	rec, body := serveHealth(t, newHealthHandler(fakePinger{}, rdb))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "ok", body.Checks["database"])
	assert.Equal(t, "down", body.Checks["redis"])
}
