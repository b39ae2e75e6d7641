package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := createSessionToken(secret, "alice@example.com", "Alice", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := parseAndValidateSession(secret, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "alice@example.com" || claims.Name != "Alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := parseAndValidateSession([]byte("other-secret"), token); err == nil {
		t.Fatalf("expected verification to fail with the wrong secret")
	}
}

func TestSessionTokenExpires(t *testing.T) {
	secret := []byte("test-secret")
	token, err := createSessionToken(secret, "alice@example.com", "Alice", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := parseAndValidateSession(secret, token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestAuthRequiredMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := []byte("test-secret")

	router := gin.New()
	router.GET("/whoami", AuthRequired(secret), func(c *gin.Context) {
		c.String(http.StatusOK, sessionEmail(c))
	})

	// No credential.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a credential, got %d", w.Code)
	}

	// Bearer header.
	token, err := createSessionToken(secret, "alice@example.com", "Alice", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "alice@example.com" {
		t.Fatalf("expected identity from bearer token, got %d %q", w.Code, w.Body.String())
	}

	// Garbage token.
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a garbage token, got %d", w.Code)
	}
}

func TestGenerateJoinCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := generateJoinCode()
		if !joinCodeRegex.MatchString(code) {
			t.Fatalf("generated code %q does not match the join-code format", code)
		}
	}
}

func TestNormalizeJoinCode(t *testing.T) {
	if got := normalizeJoinCode("  ab12cd34 "); got != "AB12CD34" {
		t.Fatalf("expected AB12CD34, got %q", got)
	}
}
