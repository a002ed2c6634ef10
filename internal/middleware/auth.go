package middleware

import (
	"net/http"
	"strings"

	"Lee_Village/internal/pkg"
	"Lee_Village/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// Auth 必须带有效 token；redis 里不是当前 token 视为被顶号
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid or expired token",
			})
			return
		}

		userRepo := &redis.UserRepository{}
		originToken, err := userRepo.GetUserToken(userID)
		if err != nil || originToken != bearerToken(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Account has been logged in elsewhere",
			})
			return
		}

		// 校验通过后顺延过期时间
		if err := userRepo.ExtendUserToken(userID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth 带了有效 token 就注入 user_id，没带照常匿名放行。
// 公开列表接口个性化字段（isLiked/myRsvp）用。
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := resolveUserID(c); ok {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func resolveUserID(c *gin.Context) (uint64, bool) {
	token := bearerToken(c)
	if token == "" {
		return 0, false
	}
	claims, err := pkg.ParseAccess(token)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}
