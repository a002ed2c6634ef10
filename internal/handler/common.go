package handler

import (
	"net/http"
	"strconv"

	"Lee_Village/internal/middleware"
	"Lee_Village/internal/pkg"

	"github.com/gin-gonic/gin"
)

// 统一响应包装 {success, data} / {success, message}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, err error) {
	c.JSON(pkg.HTTPStatus(err), gin.H{"success": false, "message": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
}

// currentUserID Auth 中间件注入；OptionalAuth 下可能为 0（匿名）
func currentUserID(c *gin.Context) uint64 {
	v, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0
	}
	id, _ := v.(uint64)
	return id
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	return pkg.NormalizePage(page, pageSize)
}
