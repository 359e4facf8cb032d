package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"uploader/internal/config"
	"uploader/internal/database"
	"uploader/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUpstream mimics the slice of the commerce REST API the server talks
// to: the attribute registry, SKU lookups and product writes.
func fakeUpstream() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/attributes", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":5,"name":"Color","slug":"pa_color"}]`))
	})
	mux.HandleFunc("/products/10", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":10,"sku":"A1"}`))
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost:
			w.Write([]byte(`{"id":101}`))
		case r.URL.Query().Get("sku") == "A1":
			w.Write([]byte(`[{"id":10}]`))
		case r.URL.Query().Has("sku"):
			w.Write([]byte(`[]`))
		default:
			w.Write([]byte(`[{"id":10},{"id":11}]`))
		}
	})
	return httptest.NewServer(mux)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := fakeUpstream()
	t.Cleanup(upstream.Close)

	db, err := database.New("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		APIPort:         "0",
		WCAPIURL:        upstream.URL,
		AuthKey:         "test-secret",
		UploadDir:       t.TempDir(),
		DefaultLanguage: "en",
		Env:             "test",
		LogLevel:        "error",
	}

	log := logger.New(cfg.LogLevel, cfg.Env)
	return New(cfg, log, db)
}

func do(s *Server, method, path, auth string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Peleman-Auth", auth)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestAuthHeaderIsRequired(t *testing.T) {
	s := newTestServer(t)

	for _, auth := range []string{"", "wrong-secret"} {
		w := do(s, http.MethodGet, "/attributes", auth, "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "You are not authorized to use this resource", body["message"])
	}
}

func TestAttributesProxy(t *testing.T) {
	s := newTestServer(t)

	w := do(s, http.MethodGet, "/attributes", "test-secret", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":5,"name":"Color","slug":"pa_color"}]`, w.Body.String())
}

func TestProductUploadPartialFailure(t *testing.T) {
	s := newTestServer(t)

	body := `{"items":[
		{"sku":"B2","name":"New product"},
		{"sku":"C3","categories":[{"slug":"missing-category"}]}
	]}`
	w := do(s, http.MethodPost, "/products", "test-secret", body)
	require.Equal(t, http.StatusMultiStatus, w.Code)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)

	assert.Equal(t, "success", items[0]["status"])
	assert.Equal(t, "created", items[0]["action"])
	assert.Equal(t, "B2", items[0]["product"])

	assert.Equal(t, "error", items[1]["status"])
	assert.Equal(t, "C3", items[1]["product"])
	assert.Equal(t, "Category missing-category not found", items[1]["message"])
}

func TestProductUploadAllSuccess(t *testing.T) {
	s := newTestServer(t)

	w := do(s, http.MethodPost, "/products", "test-secret", `{"items":[{"sku":"B2"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUploadRejectsMissingItems(t *testing.T) {
	s := newTestServer(t)

	w := do(s, http.MethodPost, "/products", "test-secret", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImageLookupMarker(t *testing.T) {
	s := newTestServer(t)

	w := do(s, http.MethodGet, "/image/missing.png", "test-secret", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "No image found.", body["message"])
	assert.Equal(t, "missing.png", body["name"])
}
