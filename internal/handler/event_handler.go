package handler

import (
	"time"

	"Lee_Village/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	svc *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

type CreateEventReq struct {
	Title       string  `json:"title" binding:"required,max=128"`
	Description string  `json:"description"`
	CoverImage  string  `json:"coverImage"`
	Type        string  `json:"type" binding:"required,oneof=Offline Online"`
	Location    string  `json:"location"`
	StartTime   string  `json:"startTime" binding:"required"`
	EndTime     *string `json:"endTime"`
}

type UpdateEventReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CoverImage  *string `json:"coverImage"`
	Type        *string `json:"type" binding:"omitempty,oneof=Offline Online"`
	Location    *string `json:"location"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
}

type RsvpReq struct {
	Status string `json:"status" binding:"required,oneof=going interested not_going"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Note   string `json:"note"`
}

func parseEventTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}

func (h *EventHandler) FindByVillage(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	page, pageSize := pageParams(c)
	includeAll := c.Query("includeAll") == "true"
	result, err := h.svc.FindEvents(id, currentUserID(c), page, pageSize, includeAll)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

func (h *EventHandler) FindByID(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	event, err := h.svc.FindByID(id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	var req CreateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	start, valid := parseEventTime(req.StartTime)
	if !valid {
		badRequest(c, "invalid startTime")
		return
	}
	in := service.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Type:        req.Type,
		Location:    req.Location,
		StartTime:   start,
	}
	if req.EndTime != nil {
		end, valid := parseEventTime(*req.EndTime)
		if !valid {
			badRequest(c, "invalid endTime")
			return
		}
		in.EndTime = &end
	}
	event, err := h.svc.Create(id, currentUserID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	var req UpdateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	in := service.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Type:        req.Type,
		Location:    req.Location,
	}
	if req.StartTime != nil {
		start, valid := parseEventTime(*req.StartTime)
		if !valid {
			badRequest(c, "invalid startTime")
			return
		}
		in.StartTime = &start
	}
	if req.EndTime != nil {
		end, valid := parseEventTime(*req.EndTime)
		if !valid {
			badRequest(c, "invalid endTime")
			return
		}
		in.EndTime = &end
	}
	event, err := h.svc.Update(id, currentUserID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	if err := h.svc.Delete(id, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": true})
}

func (h *EventHandler) Rsvp(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	var req RsvpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	status, err := h.svc.Rsvp(c.Request.Context(), id, currentUserID(c), service.RsvpInput{
		Status: req.Status,
		Name:   req.Name,
		Phone:  req.Phone,
		Note:   req.Note,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"status": status})
}

func (h *EventHandler) GetAttendees(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	page, pageSize := pageParams(c)
	result, err := h.svc.GetAttendees(id, currentUserID(c), page, pageSize)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

func (h *EventHandler) Approve(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	status, err := h.svc.Approve(id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"status": status})
}

func (h *EventHandler) Reject(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	status, err := h.svc.Reject(id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"status": status})
}
