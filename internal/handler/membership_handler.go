package handler

import (
	"Lee_Village/internal/service"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	svc *service.MembershipService
}

func NewMembershipHandler(svc *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{svc: svc}
}

type UpdateMembershipReq struct {
	Nickname *string `json:"nickname"`
	Bio      *string `json:"bio"`
	Status   *string `json:"status"`
	Privacy  *struct {
		ShowEmail    *bool `json:"showEmail"`
		ShowPhone    *bool `json:"showPhone"`
		ShowLocation *bool `json:"showLocation"`
		ShowSocials  *bool `json:"showSocials"`
	} `json:"privacy"`
}

type UpdateRoleReq struct {
	Role string `json:"role" binding:"required,oneof=chief core_member villager"`
}

func (h *MembershipHandler) FindMembers(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	members, err := h.svc.FindMembers(id, c.Query("filter"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, members)
}

func (h *MembershipHandler) FindMember(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	userID, okParam := paramID(c, "userId")
	if !okParam {
		return
	}
	member, err := h.svc.FindMember(id, userID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, member)
}

func (h *MembershipHandler) GetMe(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	member, err := h.svc.FindMember(id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, member)
}

func (h *MembershipHandler) UpdateMe(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	var req UpdateMembershipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	in := service.UpdateMembershipInput{
		Nickname: req.Nickname,
		Bio:      req.Bio,
		Status:   req.Status,
	}
	if req.Privacy != nil {
		in.Privacy = &service.PrivacyPatch{
			ShowEmail:    req.Privacy.ShowEmail,
			ShowPhone:    req.Privacy.ShowPhone,
			ShowLocation: req.Privacy.ShowLocation,
			ShowSocials:  req.Privacy.ShowSocials,
		}
	}
	membership, err := h.svc.UpdateMyProfile(id, currentUserID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, membership)
}

func (h *MembershipHandler) UpdateRole(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	userID, okParam := paramID(c, "userId")
	if !okParam {
		return
	}
	var req UpdateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	membership, err := h.svc.UpdateRole(id, userID, currentUserID(c), req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, membership)
}

func (h *MembershipHandler) RemoveMember(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	userID, okParam := paramID(c, "userId")
	if !okParam {
		return
	}
	if err := h.svc.RemoveMember(id, userID, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"removed": true})
}
