package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServer_home(t *testing.T) {
	app := setup(t)
	app.run(t, httpTest{
		method: http.MethodGet, path: "/",
		wantCode: http.StatusOK, wantData: []byte(`{"message":"Trackademics Backend Running 🚀"}`),
	})
}

func TestServer_cors(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodOptions, "/exam/all")
	req.Header.Set("Origin", "http://localhost:8501")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
}

func TestServer_unknownRoute(t *testing.T) {
	app := setup(t)
	app.run(t, httpTest{
		method: http.MethodGet, path: "/nope",
		wantCode: http.StatusNotFound, wantData: []byte(`{"error":"Not Found"}`),
	})
}
