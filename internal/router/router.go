package router

import (
	"Lee_Village/internal/handler"
	"Lee_Village/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	User       *handler.UserHandler
	Email      *handler.EmailHandler
	Village    *handler.VillageHandler
	Membership *handler.MembershipHandler
	Post       *handler.PostHandler
	Event      *handler.EventHandler
}

func InitRouter(logger *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(logger), gin.Recovery())

	// 认证相关接口
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.User.Register)
		authGroup.POST("/login", h.User.Login)
		authGroup.POST("/logout", middleware.Auth(), h.User.Logout)
		authGroup.POST("/refresh", h.User.Refresh)
		authGroup.POST("/reset", h.User.ResetPassword)
		authGroup.GET("/me", middleware.Auth(), h.User.GetMe)
	}

	// 邮件验证码
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", h.Email.SendCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/users")
	{
		userGroup.PATCH("/me", middleware.Auth(), h.User.UpdateMe)
		userGroup.GET("/me/memberships", middleware.Auth(), h.User.GetMemberships)
		userGroup.GET("/me/assets", middleware.Auth(), h.User.GetAssets)
		userGroup.GET("/:id", h.User.FindByID)
	}

	// 村庄相关接口
	villageGroup := r.Group("/api/villages")
	{
		villageGroup.GET("", h.Village.FindAll)
		villageGroup.POST("", middleware.Auth(), h.Village.Create)
		villageGroup.GET("/slug/:slug", h.Village.FindBySlug)
		villageGroup.GET("/:id", h.Village.FindByID)
		villageGroup.PATCH("/:id", middleware.Auth(), h.Village.Update)
		villageGroup.GET("/:id/stats", h.Village.GetStats)
		villageGroup.POST("/:id/join", middleware.Auth(), h.Village.Join)
		villageGroup.POST("/:id/leave", middleware.Auth(), h.Village.Leave)
		villageGroup.POST("/:id/regenerate-code", middleware.Auth(), h.Village.RegenerateCode)
		villageGroup.POST("/:id/transfer-ownership", middleware.Auth(), h.Village.TransferOwnership)

		// 成员
		villageGroup.GET("/:id/members", h.Membership.FindMembers)
		villageGroup.GET("/:id/members/me", middleware.Auth(), h.Membership.GetMe)
		villageGroup.PATCH("/:id/members/me", middleware.Auth(), h.Membership.UpdateMe)
		villageGroup.GET("/:id/members/:userId", h.Membership.FindMember)
		villageGroup.PATCH("/:id/members/:userId/role", middleware.Auth(), h.Membership.UpdateRole)
		villageGroup.DELETE("/:id/members/:userId", middleware.Auth(), h.Membership.RemoveMember)

		// 村内动态与活动
		villageGroup.GET("/:id/posts", middleware.OptionalAuth(), h.Post.FindByVillage)
		villageGroup.POST("/:id/posts", middleware.Auth(), h.Post.Create)
		villageGroup.GET("/:id/events", middleware.Auth(), h.Event.FindByVillage)
		villageGroup.POST("/:id/events", middleware.Auth(), h.Event.Create)
	}

	// 动态相关接口
	postGroup := r.Group("/api/posts")
	{
		postGroup.GET("/:id", middleware.OptionalAuth(), h.Post.FindByID)
		postGroup.DELETE("/:id", middleware.Auth(), h.Post.Delete)
		postGroup.POST("/:id/like", middleware.Auth(), h.Post.Like)
		postGroup.DELETE("/:id/like", middleware.Auth(), h.Post.Unlike)
		postGroup.GET("/:id/comments", middleware.OptionalAuth(), h.Post.GetComments)
		postGroup.POST("/:id/comments", middleware.Auth(), h.Post.CreateComment)
	}

	// 活动相关接口
	eventGroup := r.Group("/api/events")
	eventGroup.Use(middleware.Auth())
	{
		eventGroup.GET("/:id", h.Event.FindByID)
		eventGroup.PATCH("/:id", h.Event.Update)
		eventGroup.DELETE("/:id", h.Event.Delete)
		eventGroup.POST("/:id/rsvp", h.Event.Rsvp)
		eventGroup.GET("/:id/attendees", h.Event.GetAttendees)
		eventGroup.POST("/:id/approve", h.Event.Approve)
		eventGroup.POST("/:id/reject", h.Event.Reject)
	}

	return r
}
