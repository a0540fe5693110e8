package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/auth"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/expert"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/pkg/response"
)

const maxAvatarBytes = 5 << 20 // 5 MiB

type Handler struct {
	service expert.Service
}

func NewHandler(service expert.Service) *Handler {
	return &Handler{service: service}
}

// Create registers an expert profile for the authenticated account.
func (h *Handler) Create(c *gin.Context) {
	var body CreateExpertBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	accountID := auth.GetAccountID(c)
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if role := auth.GetRole(c); role != "expert" && role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "expert role required"})
		return
	}

	req := expert.CreateRequest{
		AccountID:       accountID,
		DisplayName:     body.DisplayName,
		Headline:        body.Headline,
		Skills:          body.Skills,
		HourlyRateCents: body.HourlyRateCents,
	}

	e, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, expert.ErrProfileExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, expert.ErrEmptyDisplayName), errors.Is(err, expert.ErrInvalidRate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create expert profile"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewExpertResponse(e))
}

// Get returns one expert profile.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, expert.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "expert not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get expert"})
		return
	}

	c.JSON(http.StatusOK, NewExpertResponse(e))
}

// List returns a paged expert listing.
func (h *Handler) List(c *gin.Context) {
	var req ListExpertsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	filter := expert.Filter{
		Skill:    req.Skill,
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	experts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list experts"})
		return
	}

	items := make([]ExpertResponse, len(experts))
	for i, e := range experts {
		items[i] = NewExpertResponse(e)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Update applies partial profile changes. Owner or admin only.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateExpertBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := expert.UpdateRequest{
		DisplayName:     body.DisplayName,
		Headline:        body.Headline,
		Skills:          body.Skills,
		HourlyRateCents: body.HourlyRateCents,
	}

	e, err := h.service.Update(c.Request.Context(), id, req, auth.GetAccountID(c), isAdmin(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExpertResponse(e))
}

// ReplaceSchedule swaps the weekly schedule and break dates. Owner or admin only.
func (h *Handler) ReplaceSchedule(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body ReplaceScheduleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	e, err := h.service.ReplaceSchedule(c.Request.Context(), id, body.Schedule, body.BreakDates, auth.GetAccountID(c), isAdmin(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExpertResponse(e))
}

// UploadAvatar accepts a multipart image and stores the normalized avatar.
func (h *Handler) UploadAvatar(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "avatar exceeds size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read avatar"})
		return
	}
	defer file.Close()

	e, err := h.service.SaveAvatar(c.Request.Context(), id, file, auth.GetAccountID(c), isAdmin(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewExpertResponse(e))
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, expert.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "expert not found"})
	case errors.Is(err, expert.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	case errors.Is(err, expert.ErrEmptyDisplayName), errors.Is(err, expert.ErrInvalidRate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		response.Error(c, err)
	}
}

func isAdmin(c *gin.Context) bool {
	return auth.GetRole(c) == "admin"
}
