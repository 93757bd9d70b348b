package reference

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func router() *chi.Mux {
	c := DefaultCatalog()
	d, err := NewDrawers(c, DefaultSessions)
	if err != nil {
		panic(err)
	}
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(c, d))
	return r
}

func call(t *testing.T, r http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestCatalogRoutes(t *testing.T) {
	r := router()

	code, body := call(t, r, http.MethodGet, "/api/catalog", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["entries"], 3)

	code, body = call(t, r, http.MethodGet, "/api/catalog/code-P0420", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "list", body["kind"])

	code, _ = call(t, r, http.MethodGet, "/api/catalog/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDrawerRoutes(t *testing.T) {
	r := router()

	code, body := call(t, r, http.MethodPost, "/api/drawer/s1", `{"entry":"tsb"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "tsb", body["current"].(map[string]any)["viewId"])

	code, body = call(t, r, http.MethodPost, "/api/drawer/s1/drill", `{"link":"tsb-18-1234"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "tsb", body["previous"].(map[string]any)["viewId"])

	code, _ = call(t, r, http.MethodPost, "/api/drawer/s1/drill", `{"link":"obd2-codes"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, body = call(t, r, http.MethodPost, "/api/drawer/s1/back", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "tsb", body["current"].(map[string]any)["viewId"])
	assert.Nil(t, body["previous"])

	code, body = call(t, r, http.MethodDelete, "/api/drawer/s1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, body["current"])

	code, _ = call(t, r, http.MethodPost, "/api/drawer/s1", `{"entry":"nope"}`)
	assert.Equal(t, http.StatusNotFound, code)
}
