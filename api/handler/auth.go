package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"license-hub/api/middleware"
	"license-hub/service"
	"license-hub/vars"
)

type AuthHandler struct {
	authSvc      *service.AuthService
	ttl          time.Duration
	cookieSecure bool
	log          logrus.FieldLogger
}

func NewAuthHandler(authSvc *service.AuthService, ttl time.Duration, cookieSecure bool, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authSvc:      authSvc,
		ttl:          ttl,
		cookieSecure: cookieSecure,
		log:          log,
	}
}

// LoginPage 登录表单
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", page(c, "Login", "", gin.H{"Username": ""}))
}

// Login 校验失败只显示 "Invalid login"，不下发 cookie，也不显示菜单
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	session, err := h.authSvc.Login(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Login failed, please try again"
		if errors.Is(err, service.ErrInvalidLogin) {
			status, msg = http.StatusUnauthorized, "Invalid login"
		} else {
			h.log.WithError(err).Error("login failed")
		}
		c.HTML(status, "login.html", page(c, "Login", "", gin.H{"Username": username, "Error": msg}))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(vars.SessionCookie, session.Token, int(h.ttl.Seconds()), "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusSeeOther, "/agreements/new")
}

// Logout 删除会话并清除 cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
			h.log.WithError(err).Warn("delete session failed")
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(vars.SessionCookie, "", -1, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
