package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/salonledger/salonledger-backend/internal/http/middleware"
	"github.com/salonledger/salonledger-backend/internal/http/response"
	"github.com/salonledger/salonledger-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) RegisterManager(c *gin.Context) {
	var req services.RegisterManagerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	session, err := ah.authService.RegisterManager(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	setSessionCookie(c, session)
	response.RespondCreated(c, sessionPayload(session))
}

func (ah *AuthHandler) RegisterProfessional(c *gin.Context) {
	var req services.RegisterProfessionalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	session, err := ah.authService.RegisterProfessional(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	setSessionCookie(c, session)
	response.RespondCreated(c, sessionPayload(session))
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req services.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	session, err := ah.authService.Login(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	setSessionCookie(c, session)
	response.RespondOK(c, sessionPayload(session))
}

// Logout clears the cookie. Tokens are not server-side sessions, so the
// cookie is the only thing to revoke.
func (ah *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", secureCookies(), true)
	response.RespondOK(c, gin.H{"ok": true})
}

func setSessionCookie(c *gin.Context, session *services.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, session.Token, int(session.TTL.Seconds()), "/", "", secureCookies(), true)
}

func secureCookies() bool {
	return os.Getenv("ENV") == "production"
}

func sessionPayload(session *services.Session) gin.H {
	return gin.H{
		"accessToken":   session.Token,
		"expiresIn":     int(session.TTL.Seconds()),
		"account":       session.Account,
		"approvalState": session.Approval,
	}
}
