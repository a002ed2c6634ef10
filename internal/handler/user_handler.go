package handler

import (
	"Lee_Village/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ResetReq struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UpdateUserReq struct {
	Name     *string `json:"name"`
	Avatar   *string `json:"avatar"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	result, err := h.svc.Register(req.Email, req.Password, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	result, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"loggedOut": true})
}

func (h *UserHandler) Refresh(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	pair, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, pair)
}

// ResetPassword 邮箱验证码重置密码
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	if err := h.svc.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"reset": true})
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.svc.GetByID(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user)
}

func (h *UserHandler) FindByID(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	user, err := h.svc.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	user, err := h.svc.Update(currentUserID(c), service.UpdateUserInput{
		Name:     req.Name,
		Avatar:   req.Avatar,
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user)
}

func (h *UserHandler) GetMemberships(c *gin.Context) {
	memberships, err := h.svc.GetMemberships(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, memberships)
}

func (h *UserHandler) GetAssets(c *gin.Context) {
	assets, err := h.svc.GetAssets(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, assets)
}
