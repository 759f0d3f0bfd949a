package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	stateCookie   = "oauth_state"
	sessionCookie = "session"
	sessionTTL    = 12 * time.Hour
)

// googleUserInfoURL is a var so tests can point it at a stub server.
var googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthHandler runs the Google sign-in code flow and issues the session JWT.
type AuthHandler struct {
	OAuth     *oauth2.Config
	JWTSecret string
	Log       *zap.Logger
}

func NewAuthHandler(oauthCfg *oauth2.Config, jwtSecret string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{OAuth: oauthCfg, JWTSecret: jwtSecret, Log: log}
}

// Login redirects to the Google consent screen with a fresh state nonce.
func (h *AuthHandler) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookie, state, int(10*time.Minute/time.Second), "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.OAuth.AuthCodeURL(state))
}

// Callback exchanges the authorization code, fetches the Google profile and
// issues a signed session token, returned in the body and as a cookie.
func (h *AuthHandler) Callback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	tok, err := h.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		h.Log.Error("oauth code exchange failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign-in failed"})
		return
	}

	info, err := h.fetchUserInfo(c, tok)
	if err != nil {
		h.Log.Error("userinfo fetch failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign-in failed"})
		return
	}

	claims := jwt.MapClaims{
		"sub":   info.ID,
		"email": info.Email,
		"name":  info.Name,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate session"})
		return
	}

	c.SetCookie(sessionCookie, signed, int(sessionTTL/time.Second), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"user":  gin.H{"id": info.ID, "email": info.Email, "name": info.Name},
	})
}

func (h *AuthHandler) fetchUserInfo(c *gin.Context, tok *oauth2.Token) (*googleUserInfo, error) {
	client := h.OAuth.Client(c.Request.Context(), tok)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
