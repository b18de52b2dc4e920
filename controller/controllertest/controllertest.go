// Package controllertest holds fixtures shared by the controller tests.
package controllertest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"checksync/middleware"
	"checksync/seed"
	"checksync/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var Secret = []byte("test-secret")

// Now is the fixed clock of stores built by NewStore.
var Now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// NewStore returns a store over the seed fixture with a fixed clock and
// sequential ids (id1, id2, ...).
func NewStore(t *testing.T, observers ...store.Observer) *store.Store {
	t.Helper()
	initial, err := seed.Default(Now)
	require.NoError(t, err)

	var mu sync.Mutex
	n := 0
	env := store.Env{
		Now: func() time.Time { return Now },
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id%d", n)
		},
	}
	return store.New(initial, env, observers...)
}

func NewRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func Token(t *testing.T, userID string) string {
	t.Helper()
	token, err := middleware.CreateAccessToken(Secret, userID, time.Hour)
	require.NoError(t, err)
	return token
}

// Do sends body (JSON-encoded unless it is a string) as userID. An empty
// userID sends no Authorization header.
func Do(t *testing.T, r http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+Token(t, userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals the recorded JSON body into v.
func Decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
