package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"license-hub/api/middleware"
	"license-hub/service"
	"license-hub/storage/sqlstore"
	"license-hub/types"
)

// 左侧菜单
const (
	menuUpload    = "upload"
	menuAmendment = "amendment"
	menuView      = "view"
)

// page 组装模板数据，公共字段总是存在
func page(c *gin.Context, title, menu string, extra gin.H) gin.H {
	data := gin.H{
		"Title": title,
		"Menu":  menu,
		"User":  middleware.Username(c),
		"Error": "",
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// httpStatus 业务错误 -> HTTP 状态码；其他错误用 fallback
func httpStatus(err error, fallback int) int {
	switch {
	case errors.Is(err, service.ErrMissingFile),
		errors.Is(err, types.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrBaseNotFound),
		errors.Is(err, sqlstore.ErrNotFound):
		return http.StatusNotFound
	default:
		return fallback
	}
}

func parseID(v string) (uint, error) {
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// Healthz 存活检查
func Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
