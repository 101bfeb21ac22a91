package controller

import (
	"bytes"
	"droboapp-panel/middelware"
	"droboapp-panel/models"
	"droboapp-panel/utils/logger"
	"droboapp-panel/views"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthController struct {
	sessions  *middelware.SessionManager
	identity  models.AppIdentity
	logger    logger.Logger
	validator *validator.Validate
}

func NewAuthController(sessions *middelware.SessionManager, identity models.AppIdentity, logger logger.Logger) *AuthController {
	return &AuthController{
		sessions:  sessions,
		identity:  identity,
		logger:    logger,
		validator: validator.New(),
	}
}

// LoginForm handles GET /login
func (h *AuthController) LoginForm(c *gin.Context) {
	if !h.sessions.Config.AuthEnabled() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.renderLogin(c, http.StatusOK, "")
}

// Login handles POST /login
func (h *AuthController) Login(c *gin.Context) {
	if !h.sessions.Config.AuthEnabled() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLogin(c, http.StatusBadRequest, "Invalid login form")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.renderLogin(c, http.StatusBadRequest, "Please enter the password")
		return
	}

	if !h.sessions.CheckPassword(req.Password) {
		h.logger.Warnf("Failed login attempt from %s", c.ClientIP())
		h.renderLogin(c, http.StatusUnauthorized, "Wrong password")
		return
	}

	token, expiresAt, err := h.sessions.GenerateToken()
	if err != nil {
		h.renderLogin(c, http.StatusInternalServerError, "Could not start a session")
		return
	}
	h.sessions.SetSessionCookie(c, token, expiresAt)
	h.logger.Infof("Admin signed in from %s", c.ClientIP())
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles GET /logout
func (h *AuthController) Logout(c *gin.Context) {
	h.sessions.ClearSessionCookie(c)
	if h.sessions.Config.AuthEnabled() {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthController) renderLogin(c *gin.Context, code int, message string) {
	var buf bytes.Buffer
	if err := views.RenderLogin(&buf, &views.LoginPage{App: h.identity, Error: message}); err != nil {
		h.logger.Errorf("Failed to render login page: %v", err)
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}
	c.Data(code, "text/html; charset=utf-8", buf.Bytes())
}
