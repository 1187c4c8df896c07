// Package testutil holds helpers shared by the HTTP handler tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Serve sends a body-less request for path through h and returns the
// recorded response.
func Serve(t testing.TB, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// Get is Serve with GET.
func Get(t testing.TB, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	return Serve(t, h, http.MethodGet, path)
}

// LoopbackGet is Get from 127.0.0.1, which tsweb.AllowDebugAccess lets
// through to /debug pages.
func LoopbackGet(t testing.TB, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "127.0.0.1:12345"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertRegistered fails when any path answers 404 on h. Debug pages may
// refuse non-local callers, so any other status counts as registered.
func AssertRegistered(t testing.TB, h http.Handler, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if w := Get(t, h, p); w.Code == http.StatusNotFound {
			t.Errorf("Endpoint %s should be registered, got 404", p)
		}
	}
}

// DecodeJSON decodes the recorded body into v, failing the test on error.
func DecodeJSON(t testing.TB, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}
