package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"license-hub/api/response"
	"license-hub/storage/sqlstore"
	"license-hub/vars"
)

const (
	RequestIDHeader = "X-Request-ID"
	ctxUsername     = "username"
)

// Authenticator 会话令牌校验
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*sqlstore.Session, error)
}

// Logger 用 logrus 记录每个请求，附带 request id
func Logger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"took":       time.Since(start),
			"ip":         c.ClientIP(),
		})
		if user := Username(c); user != "" {
			entry = entry.WithField("user", user)
		}
		if len(c.Errors) > 0 {
			entry.WithError(errors.New(c.Errors.String())).Warn("request finished with errors")
			return
		}
		entry.Info("request")
	}
}

// RequireSession 校验 cookie 或 Bearer 令牌；页面请求跳转登录页，API 请求返回 401
func RequireSession(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		session, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				response.Error(c, http.StatusUnauthorized, "login required")
				return
			}
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set(ctxUsername, session.Username)
		c.Next()
	}
}

// SessionToken 先取 Authorization: Bearer，再取 cookie
func SessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	token, _ := c.Cookie(vars.SessionCookie)
	return token
}

// Username 当前登录用户，未登录时为空
func Username(c *gin.Context) string {
	return c.GetString(ctxUsername)
}
