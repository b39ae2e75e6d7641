package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ericogr/vino-arena/internal/constants"
	"github.com/ericogr/vino-arena/internal/logging"
	"github.com/ericogr/vino-arena/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 24 * time.Hour

type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// AuthHandler issues and clears session tokens.
type AuthHandler struct {
	repo         storage.Repository
	secret       []byte
	secureCookie bool
}

func NewAuthHandler(repo storage.Repository, secret []byte, secureCookie bool) *AuthHandler {
	return &AuthHandler{repo: repo, secret: secret, secureCookie: secureCookie}
}

func createSessionToken(secret []byte, email, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseAndValidateSession(secret []byte, token string) (*sessionClaims, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, errors.New("invalid session token")
	}
	return &claims, nil
}

// setSessionCookie sets the session cookie with appropriate flags for dev/prod.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", h.secureCookie, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

type CreateSessionPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateSession mints a session token for the given identity and sets the
// session cookie. The token is also returned so non-browser clients can send
// it as a bearer credential.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req CreateSessionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}

	// Prefer a server-stored display name when the profile already exists so
	// returning players keep the name they chose.
	nameToUse := strings.TrimSpace(req.Name)
	if p, err := h.repo.GetProfile(email); err == nil && p.Name != "" {
		nameToUse = p.Name
	}
	if nameToUse == "" {
		nameToUse = email
	}
	_ = h.repo.UpsertProfile(email, nameToUse)
	if err := h.repo.GrantStarterCellar(email); err != nil {
		logging.Error("failed to grant starter cellar", err, logging.Fields{constants.LogFieldPlayer: email})
	}

	token, err := createSessionToken(h.secret, email, nameToUse, sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
		return
	}
	h.setSessionCookie(c, token, sessionTTL)
	c.JSON(http.StatusOK, gin.H{"email": email, "name": nameToUse, "token": token})
}

// DeleteSession clears the session cookie.
func (h *AuthHandler) DeleteSession(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Session cleared"})
}

// AuthRequired validates the session credential (cookie or bearer header)
// and injects identity into context.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(constants.CookieSessionName)
		if token == "" {
			if auth := c.GetHeader(constants.HeaderAuthorization); strings.HasPrefix(auth, constants.BearerPrefix) {
				token = strings.TrimPrefix(auth, constants.BearerPrefix)
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateSession(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set("userEmail", claims.Subject)
		c.Set("userName", claims.Name)
		c.Next()
	}
}

// sessionEmail returns the authenticated email from the gin context.
func sessionEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return ""
}

func sessionName(c *gin.Context) string {
	if v, ok := c.Get("userName"); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return ""
}
