package handler

import (
	"Lee_Village/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type CreatePostReq struct {
	Content string   `json:"content" binding:"required,max=5000"`
	Images  []string `json:"images"`
	Tags    []string `json:"tags"`
}

type CreateCommentReq struct {
	Content  string  `json:"content" binding:"required,max=2000"`
	ParentID *uint64 `json:"parentId"`
}

func (h *PostHandler) FindByVillage(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	page, pageSize := pageParams(c)
	result, err := h.svc.FindPosts(id, currentUserID(c), page, pageSize)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

func (h *PostHandler) FindByID(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	post, err := h.svc.FindByID(id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, post)
}

func (h *PostHandler) Create(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	post, err := h.svc.Create(id, currentUserID(c), service.CreatePostInput{
		Content: req.Content,
		Images:  req.Images,
		Tags:    req.Tags,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
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

func (h *PostHandler) Like(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	changed, err := h.svc.Like(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"liked": true, "changed": changed})
}

func (h *PostHandler) Unlike(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	changed, err := h.svc.Unlike(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"liked": false, "changed": changed})
}

func (h *PostHandler) GetComments(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	comments, err := h.svc.GetComments(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, comments)
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	id, okParam := paramID(c, "id")
	if !okParam {
		return
	}
	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	comment, err := h.svc.CreateComment(id, currentUserID(c), service.CreateCommentInput{
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, comment)
}
