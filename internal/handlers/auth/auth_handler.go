// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"

	"tour-admin/internal/domain/auth"
	"tour-admin/internal/middleware"
	xerrors "tour-admin/internal/pkg/errors"
	"tour-admin/internal/pkg/response"
	"tour-admin/internal/pkg/session"
	authUsecase "tour-admin/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardPath is where a successful sign-in lands.
const DashboardPath = "/dashboard"

const loginPage = "login.html"

type AuthHandler struct {
	authService *authUsecase.AuthService
	issuer      *session.Issuer
	reader      middleware.SessionReader
	logger      *zap.Logger
}

func NewAuthHandler(authService *authUsecase.AuthService, issuer *session.Issuer, reader middleware.SessionReader, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		issuer:      issuer,
		reader:      reader,
		logger:      logger,
	}
}

// ShowLogin renders the sign-in form. It is shown even when the caller
// already holds an admin session.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, loginPage, gin.H{"Error": "", "Email": ""})
}

// Login accepts the form post or a JSON body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.loginFailed(c, &req, http.StatusBadRequest, "invalid request", err)
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidCredentials) {
			h.loginFailed(c, &req, http.StatusUnauthorized, xerrors.ErrInvalidCredentials.Error(), nil)
			return
		}
		h.logger.Error("login failed", zap.String("ip", req.IPAddress), zap.Error(err))
		h.loginFailed(c, &req, http.StatusInternalServerError, "sign-in is unavailable, try again later", nil)
		return
	}

	h.issuer.SetCookie(c, result.Session)

	if response.WantsJSON(c) {
		response.Success(c, http.StatusOK, "login successful", auth.LoginResponse{
			Redirect:  DashboardPath,
			ExpiresAt: result.Session.ExpiresAt,
			User:      auth.NewUserInfo(result.Identity),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, DashboardPath)
}

func (h *AuthHandler) loginFailed(c *gin.Context, req *auth.LoginRequest, status int, message string, err error) {
	if response.WantsJSON(c) {
		response.Error(c, status, message, err)
		return
	}
	c.HTML(status, loginPage, gin.H{"Error": message, "Email": req.Email})
	c.Abort()
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := h.reader.Read(c.Request); ok {
		h.authService.Logout(c.Request.Context(), sess)
	}
	h.issuer.Clear(c)

	if response.WantsJSON(c) {
		c.JSON(http.StatusOK, response.Response{Success: true, Message: "logout successful", Redirect: middleware.LoginPath})
		return
	}
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
