package handler

import (
	"Lee_Village/internal/model"
	"Lee_Village/internal/service"

	"github.com/gin-gonic/gin"
)

type VillageHandler struct {
	svc *service.VillageService
}

func NewVillageHandler(svc *service.VillageService) *VillageHandler {
	return &VillageHandler{svc: svc}
}

type CreateVillageReq struct {
	Name           string `json:"name" binding:"required,max=64"`
	Category       string `json:"category" binding:"required,oneof=Interest Professional Region Lifestyle"`
	Description    string `json:"description"`
	CurrencyName   string `json:"currencyName"`
	CurrencySymbol string `json:"currencySymbol"`
	Visibility     string `json:"visibility" binding:"omitempty,oneof=public private"`
}

type UpdateVillageReq struct {
	Name           *string           `json:"name"`
	Description    *string           `json:"description"`
	Announcement   *string           `json:"announcement"`
	CoverImage     *string           `json:"coverImage"`
	Icon           *string           `json:"icon"`
	Visibility     *string           `json:"visibility" binding:"omitempty,oneof=public private"`
	CurrencyName   *string           `json:"currencyName"`
	CurrencySymbol *string           `json:"currencySymbol"`
	Constitution   *model.StringList `json:"constitution"`
	PointRules     *model.PointRules `json:"pointRules"`
}

type JoinVillageReq struct {
	InviteCode string `json:"inviteCode"`
}

type TransferOwnershipReq struct {
	NewOwnerID uint64 `json:"newOwnerId" binding:"required"`
}

func (h *VillageHandler) FindAll(c *gin.Context) {
	villages, err := h.svc.FindAll(c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, villages)
}

func (h *VillageHandler) FindByID(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	village, err := h.svc.FindByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, village)
}

func (h *VillageHandler) FindBySlug(c *gin.Context) {
	village, err := h.svc.FindBySlug(c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, village)
}

func (h *VillageHandler) Create(c *gin.Context) {
	var req CreateVillageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	village, err := h.svc.Create(currentUserID(c), service.CreateVillageInput{
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		CurrencyName:   req.CurrencyName,
		CurrencySymbol: req.CurrencySymbol,
		Visibility:     req.Visibility,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, village)
}

func (h *VillageHandler) Update(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	var req UpdateVillageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	village, err := h.svc.Update(id, currentUserID(c), service.UpdateVillageInput{
		Name:           req.Name,
		Description:    req.Description,
		Announcement:   req.Announcement,
		CoverImage:     req.CoverImage,
		Icon:           req.Icon,
		Visibility:     req.Visibility,
		CurrencyName:   req.CurrencyName,
		CurrencySymbol: req.CurrencySymbol,
		Constitution:   req.Constitution,
		PointRules:     req.PointRules,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, village)
}

func (h *VillageHandler) Join(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	var req JoinVillageReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid params")
			return
		}
	}
	membership, err := h.svc.Join(id, currentUserID(c), req.InviteCode)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, membership)
}

func (h *VillageHandler) Leave(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	if err := h.svc.Leave(id, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"left": true})
}

func (h *VillageHandler) RegenerateCode(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	code, err := h.svc.RegenerateCode(id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"inviteCode": code})
}

func (h *VillageHandler) TransferOwnership(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	var req TransferOwnershipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	if err := h.svc.TransferOwnership(id, currentUserID(c), req.NewOwnerID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"newOwnerId": req.NewOwnerID})
}

func (h *VillageHandler) GetStats(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	stats, err := h.svc.GetStats(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stats)
}
