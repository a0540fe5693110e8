package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mockeefy-byte/mockeefy-sub000/internal/auth"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/availability"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/expert"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/pkg/response"
	"github.com/mockeefy-byte/mockeefy-sub000/internal/session"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service       session.Service
	expertService expert.Service
}

func NewHandler(service session.Service, expertService expert.Service) *Handler {
	return &Handler{
		service:       service,
		expertService: expertService,
	}
}

// Slots resolves the bookable slots for an expert, date, and duration.
// Public: candidates browse availability before authenticating.
func (h *Handler) Slots(c *gin.Context) {
	expertID := c.Param("id")
	if _, err := uuid.Parse(expertID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req SlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		response.Error(c, session.ErrInvalidDate)
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), expertID, date, req.Duration)
	if err != nil {
		response.Error(c, err)
		return
	}

	if slots == nil {
		slots = []availability.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{
		"date":     req.Date,
		"duration": req.Duration,
		"slots":    slots,
	})
}

// Create books a session for the authenticated candidate.
func (h *Handler) Create(c *gin.Context) {
	var body CreateSessionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	accountID := auth.GetAccountID(c)
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	req := session.CreateRequest{
		CandidateID: accountID,
		ExpertID:    body.ExpertID,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
	}

	s, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSessionResponse(s))
}

// List returns sessions visible to the caller. Candidates see their own
// bookings; an expert may additionally filter by their own profile;
// admins see everything.
func (h *Handler) List(c *gin.Context) {
	var req ListSessionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	accountID := auth.GetAccountID(c)
	isAdmin := auth.GetRole(c) == "admin"

	filter := session.Filter{
		ExpertID:  req.ExpertID,
		Status:    req.Status,
		StartTime: req.StartTimeFrom,
		EndTime:   req.StartTimeTo,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	switch {
	case isAdmin:
		filter.CandidateID = req.CandidateID // may be empty to show all
	case req.ExpertID != "" && h.ownsExpert(c, req.ExpertID, accountID):
		// Expert viewing their own bookings; no candidate restriction.
	default:
		filter.CandidateID = accountID
	}

	sessions, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}

	items := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		items[i] = NewSessionResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get returns one session. Participant or admin only.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	accountID := auth.GetAccountID(c)
	isParticipant := s.CandidateID == accountID || h.ownsExpert(c, s.ExpertID, accountID)
	if !isParticipant && auth.GetRole(c) != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewSessionResponse(s))
}

// Update reschedules a session or changes its status.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateSessionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := session.UpdateRequest{
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Status:    body.Status,
	}

	s, err := h.service.Update(c.Request.Context(), id, req, auth.GetAccountID(c), auth.GetRole(c) == "admin")
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSessionResponse(s))
}

// ownsExpert reports whether the account owns the given expert profile.
func (h *Handler) ownsExpert(c *gin.Context, expertID, accountID string) bool {
	if accountID == "" {
		return false
	}
	e, err := h.expertService.GetByID(c.Request.Context(), expertID)
	if err != nil {
		return false
	}
	return e.AccountID == accountID
}
