package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"shareit/app"
	"shareit/config"
	"shareit/controllers"
	"shareit/db"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:http_%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := zerolog.Nop()
	cfg := &config.Config{}
	cfg.Cache.SearchTTLSeconds = 60

	r := gin.New()
	a := &app.App{Router: r, DB: conn, RDB: rdb, Config: cfg, Logger: &log}
	Register(r, a)
	return &testServer{router: r}
}

// do issues a request with the caller identity header; uid 0 omits it.
func (ts *testServer) do(t *testing.T, method, path string, uid int64, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if uid > 0 {
		req.Header.Set(controllers.UserIDHeader, strconv.FormatInt(uid, 10))
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func (ts *testServer) createUser(t *testing.T, name, email string) int64 {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/users", 0, gin.H{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decode(t, w)["id"].(float64))
}

func (ts *testServer) createItem(t *testing.T, uid int64, name string, available bool) int64 {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/items", uid, gin.H{
		"name": name, "description": name + " description", "available": available,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decode(t, w)["id"].(float64))
}

func TestRentalFlow(t *testing.T) {
	ts := newTestServer(t)

	u1 := ts.createUser(t, "u1", "u1@example.com")
	u2 := ts.createUser(t, "u2", "u2@example.com")
	u3 := ts.createUser(t, "u3", "u3@example.com")

	itemA := ts.createItem(t, u1, "broken drill", false)
	itemB := ts.createItem(t, u1, "drill", true)

	now := time.Now().UTC()
	window := gin.H{
		"itemId": itemB,
		"start":  now.AddDate(0, 0, 1).Format(time.RFC3339),
		"end":    now.AddDate(0, 0, 2).Format(time.RFC3339),
	}

	t.Run("booking an unavailable item", func(t *testing.T) {
		in := gin.H{"itemId": itemA}
		for k, v := range window {
			if k != "itemId" {
				in[k] = v
			}
		}
		w := ts.do(t, http.MethodPost, "/bookings", u2, in)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("owner booking their own item", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/bookings", u1, window)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	var bookingID int64
	t.Run("renter books", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/bookings", u2, window)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decode(t, w)
		bookingID = int64(body["id"].(float64))
		assert.Equal(t, "WAITING", body["status"])
		booker := body["booker"].(map[string]any)
		assert.Equal(t, float64(u2), booker["id"])
	})

	t.Run("overlapping booking", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/bookings", u3, window)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-owner approval", func(t *testing.T) {
		w := ts.do(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", bookingID), u2, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("owner approves", func(t *testing.T) {
		w := ts.do(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", bookingID), u1, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "APPROVED", decode(t, w)["status"])
	})

	t.Run("second decision", func(t *testing.T) {
		w := ts.do(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", bookingID), u1, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("renter and owner see the booking, a stranger does not", func(t *testing.T) {
		for _, uid := range []int64{u1, u2} {
			w := ts.do(t, http.MethodGet, fmt.Sprintf("/bookings/%d", bookingID), uid, nil)
			assert.Equal(t, http.StatusOK, w.Code)
		}
		w := ts.do(t, http.MethodGet, fmt.Sprintf("/bookings/%d", bookingID), u3, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("state listings", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/bookings?state=FUTURE", u2, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1)

		w = ts.do(t, http.MethodGet, "/bookings/owner", u1, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	})

	t.Run("unknown state filter", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/bookings?state=SOMETHING", u2, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Unknown state: UNSUPPORTED_STATUS", decode(t, w)["error"])
	})
}

func TestIdentityHeader(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing header", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/items", 0, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.Header.Set(controllers.UserIDHeader, "abc")
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestItemEndpoints(t *testing.T) {
	ts := newTestServer(t)

	owner := ts.createUser(t, "owner", "owner@example.com")
	other := ts.createUser(t, "other", "other@example.com")
	itemID := ts.createItem(t, owner, "drill", true)

	t.Run("search", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/items/search?text=DRILL", other, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 1)
	})

	t.Run("non-owner patch is forbidden", func(t *testing.T) {
		w := ts.do(t, http.MethodPatch, fmt.Sprintf("/items/%d", itemID), other, gin.H{"name": "mine"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("comment without rental", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), other, gin.H{"text": "nice"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/users", 0, gin.H{"name": "dup", "email": "owner@example.com"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestRequestEndpoints(t *testing.T) {
	ts := newTestServer(t)

	alice := ts.createUser(t, "alice", "alice@example.com")
	bob := ts.createUser(t, "bob", "bob@example.com")

	w := ts.do(t, http.MethodPost, "/requests", alice, gin.H{"description": "need a drill"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reqID := int64(decode(t, w)["id"].(float64))

	t.Run("an item can answer the ad", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/items", bob, gin.H{
			"name": "drill", "description": "as requested", "available": true, "requestId": reqID,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("creator sees the answers", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/requests", alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 1)
		items := list[0]["items"].([]any)
		assert.Len(t, items, 1)
	})

	t.Run("others browse with paging", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/requests/all?from=0&size=10", bob, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	})

	t.Run("bad paging", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/requests/all?from=-1&size=10", bob, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, fmt.Sprintf("/requests/%d", reqID), bob, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/healthz", 0, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
