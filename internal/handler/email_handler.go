package handler

import (
	"Lee_Village/internal/service"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	svc *service.EmailService
}

func NewEmailHandler(svc *service.EmailService) *EmailHandler {
	return &EmailHandler{svc: svc}
}

type SendCodeReq struct {
	Email string `json:"email" binding:"required,email"`
}

// SendCode 发送验证码，scope 当前只支持 reset
func (h *EmailHandler) SendCode(c *gin.Context) {
	scope := c.Param("scope")
	if scope != service.ScopeReset {
		badRequest(c, "invalid scope")
		return
	}
	var req SendCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	if err := h.svc.SendCode(scope, req.Email); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"sent": true})
}
