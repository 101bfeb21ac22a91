package middelware

import (
	"droboapp-panel/models"
	"droboapp-panel/utils/logger"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionManager issues and checks admin session tokens
type SessionManager struct {
	Config *models.Config
	Logger logger.Logger
}

// NewSessionManager creates a new session manager
func NewSessionManager(cfg *models.Config, log logger.Logger) *SessionManager {
	return &SessionManager{
		Config: cfg,
		Logger: log,
	}
}

// CheckPassword compares password with the configured bcrypt hash
func (s *SessionManager) CheckPassword(password string) bool {
	if !s.Config.AuthEnabled() {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(s.Config.AdminPasswordHash), []byte(password))
	return err == nil
}

// GenerateToken generates a session JWT
func (s *SessionManager) GenerateToken() (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.Config.JWTExpiresIn)
	claims := models.SessionClaims{
		App: s.Config.AppID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   "admin",
			Issuer:    s.Config.AppID,
			Audience:  jwt.ClaimStrings{s.Config.AppID},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		s.Logger.Errorf("Failed to sign session token: %v", err)
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a session JWT and returns its claims
func (s *SessionManager) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.Config.JWTSecret), nil
	}, jwt.WithIssuer(s.Config.AppID), jwt.WithAudience(s.Config.AppID))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.App != s.Config.AppID {
		return nil, fmt.Errorf("token issued for another app")
	}
	return claims, nil
}

// SetSessionCookie stores a session token in the response
func (s *SessionManager) SetSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(models.SessionCookieName, token, int(time.Until(expiresAt).Seconds()), "/", "", false, true)
}

// ClearSessionCookie removes the session cookie
func (s *SessionManager) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(models.SessionCookieName, "", -1, "/", "", false, true)
}

// AuthMiddleware requires a valid session when a password is configured.
// API requests get a 401, page requests are redirected to the login form.
func (s *SessionManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Config.AuthEnabled() {
			c.Next()
			return
		}

		token, err := c.Cookie(models.SessionCookieName)
		if err == nil {
			var claims *models.SessionClaims
			claims, err = s.ValidateToken(token)
			if err == nil {
				c.Set("session_id", claims.ID)
				c.Next()
				return
			}
		}

		s.Logger.Debugf("Rejected unauthenticated request to %s: %v", c.Request.URL.Path, err)
		if strings.HasPrefix(c.Request.URL.Path, s.Config.BasePath+"/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewErrorResponse(
				http.StatusUnauthorized, "Authentication required", "AuthenticationError", "Sign in through the control panel first"))
			return
		}
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
	}
}
