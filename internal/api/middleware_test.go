package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecoveryMiddleware_Panic(t *testing.T) {
	logger := discardLogger()

	panicHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("test panic")
	})

	handler := recoveryMiddleware(logger)(panicHandler)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("recoveryMiddleware(panic) status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	body := decodeErrorEnvelope(t, w)

	if body.Code != "internal_error" {
		t.Errorf("recoveryMiddleware(panic) code = %q, want %q", body.Code, "internal_error")
	}
}

func TestRecoveryMiddleware_NoPanic(t *testing.T) {
	logger := discardLogger()

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"ok": "true"})
	})

	handler := recoveryMiddleware(logger)(okHandler)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("recoveryMiddleware(ok) status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCORSMiddleware_AllowedOriginPreflight(t *testing.T) {
	origins := []string{"http://localhost:3000"}
	handler := corsMiddleware(origins)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("next handler should not be called for OPTIONS")
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodOptions, "/api/v1/chat", nil)
	r.Header.Set("Origin", "http://localhost:3000")

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("CORS preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:3000")
	}

	if got := w.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Error("Access-Control-Allow-Headers should be set")
	}
}

func TestCORSMiddleware_DisallowedOriginPreflight(t *testing.T) {
	origins := []string{"http://localhost:3000"}
	handler := corsMiddleware(origins)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("next handler should not be called for OPTIONS")
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodOptions, "/api/v1/chat", nil)
	r.Header.Set("Origin", "http://evil.com")

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("CORS disallowed preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want empty for disallowed origin", got)
	}
}

func TestCORSMiddleware_NormalRequest(t *testing.T) {
	origins := []string{"http://localhost:3000"}
	called := false
	handler := corsMiddleware(origins)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil)
	r.Header.Set("Origin", "http://localhost:3000")

	handler.ServeHTTP(w, r)

	if !called {
		t.Error("next handler was not called")
	}

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:3000")
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		w := httptest.NewRecorder()
		setSecurityHeaders(w, false)

		expected := map[string]string{
			"X-Content-Type-Options":    "nosniff",
			"X-Frame-Options":           "DENY",
			"Referrer-Policy":           "strict-origin-when-cross-origin",
			"Content-Security-Policy":   "default-src 'none'",
			"Strict-Transport-Security": "max-age=63072000; includeSubDomains",
		}

		for header, want := range expected {
			if got := w.Header().Get(header); got != want {
				t.Errorf("setSecurityHeaders(isDev=false) %q = %q, want %q", header, got, want)
			}
		}
	})

	t.Run("dev", func(t *testing.T) {
		w := httptest.NewRecorder()
		setSecurityHeaders(w, true)

		if got := w.Header().Get("Strict-Transport-Security"); got != "" {
			t.Errorf("setSecurityHeaders(isDev=true) HSTS = %q, want empty", got)
		}

		// Other headers should still be set
		if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
			t.Errorf("setSecurityHeaders(isDev=true) X-Content-Type-Options = %q, want %q", got, "nosniff")
		}
	})
}
