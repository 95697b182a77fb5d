package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apppartner "github.com/realestate/backend/internal/application/partner"
	"github.com/realestate/backend/internal/application/unitofwork"
	"github.com/realestate/backend/internal/domain/partner"
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
	"github.com/realestate/backend/internal/interfaces/http/dto"
)

// Commander dispatches a command through the application's routing table
type Commander interface {
	Execute(ctx context.Context, command string, payload any, overrides map[string]any) (unitofwork.Result, error)
}

// PartnerHandler handles partner API endpoints
type PartnerHandler struct {
	BaseHandler
	app Commander
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(app Commander) *PartnerHandler {
	return &PartnerHandler{app: app}
}

// CreatePartnerRequest is the payload for creating a partner
type CreatePartnerRequest struct {
	Name   string `json:"name" binding:"required"`
	UserID string `json:"user_id" binding:"required,uuid"`
}

// PromotePartnerRequest is the payload for moving a partner to a new tier
type PromotePartnerRequest struct {
	Tier string `json:"tier" binding:"required,oneof=bronze silver gold"`
}

// AchievementRequest is the payload for registering or removing an achievement
type AchievementRequest struct {
	Type     string  `json:"type" binding:"required,oneof=close capture"`
	Revenue  float64 `json:"revenue" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"omitempty,oneof=ARS USD"`
	Period   string  `json:"period" binding:"required,period"`
}

// FeeQueryRequest asks which fee a partner earns for an achievement type on
// an operation type
type FeeQueryRequest struct {
	Achievement string `form:"achievement" binding:"required,oneof=close capture"`
	Operation   string `form:"operation" binding:"required,oneof=sale rent"`
}

// PartnerResponse is the API shape of a partner
type PartnerResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"`
	Tier   string    `json:"tier"`
}

// FeeResponse is the API shape of a fee query answer
type FeeResponse struct {
	Fee string `json:"fee"`
}

func newPartnerResponse(p *partner.Partner) PartnerResponse {
	return PartnerResponse{
		ID:     p.ID,
		Name:   p.Name,
		UserID: p.UserID,
		Status: string(p.Status),
		Tier:   string(p.Tier),
	}
}

// RegisterRoutes registers partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partners := rg.Group("/partners")
	{
		partners.POST("", h.Create)
		partners.POST("/:id/activate", h.Activate)
		partners.POST("/:id/deactivate", h.Deactivate)
		partners.POST("/:id/ban", h.Ban)
		partners.POST("/:id/promote", h.Promote)
		partners.POST("/:id/achievements", h.RegisterAchievement)
		partners.DELETE("/:id/achievements", h.RemoveAchievement)
		partners.GET("/:id/fees", h.FeeFor)
	}
}

// Create creates a new partner
func (h *PartnerHandler) Create(c *gin.Context) {
	var req CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		h.BadRequest(c, "invalid user id")
		return
	}

	h.dispatch(c, apppartner.CommandCreate, apppartner.CreateCommand{
		Name:   req.Name,
		UserID: userID,
	}, true)
}

// Activate activates a partner
func (h *PartnerHandler) Activate(c *gin.Context) {
	id, ok := h.partnerID(c)
	if !ok {
		return
	}
	h.dispatch(c, apppartner.CommandActivate, apppartner.ActivateCommand{PartnerID: id}, false)
}

// Deactivate suspends a partner
func (h *PartnerHandler) Deactivate(c *gin.Context) {
	id, ok := h.partnerID(c)
	if !ok {
		return
	}
	h.dispatch(c, apppartner.CommandDeactivate, apppartner.DeactivateCommand{PartnerID: id}, false)
}

// Ban permanently blocks a partner
func (h *PartnerHandler) Ban(c *gin.Context) {
	id, ok := h.partnerID(c)
	if !ok {
		return
	}
	h.dispatch(c, apppartner.CommandBan, apppartner.BanCommand{PartnerID: id}, false)
}

// Promote moves a partner to a new tier
func (h *PartnerHandler) Promote(c *gin.Context) {
	id, ok := h.partnerID(c)
	if !ok {
		return
	}

	var req PromotePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	h.dispatch(c, apppartner.CommandPromote, apppartner.PromoteCommand{
		PartnerID: id,
		Tier:      partner.Tier(req.Tier),
	}, false)
}

// RegisterAchievement records an achievement for a period
func (h *PartnerHandler) RegisterAchievement(c *gin.Context) {
	h.achievement(c, apppartner.CommandRegisterAchievement)
}

// RemoveAchievement compensates a previously registered achievement
func (h *PartnerHandler) RemoveAchievement(c *gin.Context) {
	h.achievement(c, apppartner.CommandRemoveAchievement)
}

func (h *PartnerHandler) achievement(c *gin.Context, command string) {
	id, ok := h.partnerID(c)
	if !ok {
		return
	}

	var req AchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	currency := valueobject.DefaultCurrency
	if req.Currency != "" {
		currency = valueobject.Currency(req.Currency)
	}
	revenue, err := valueobject.NewMoneyFromFloat(req.Revenue, currency)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	period, err := valueobject.PeriodFromString(req.Period)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.dispatch(c, command, apppartner.AchievementCommand{
		PartnerID:       id,
		AchievementType: shared.AchievementType(req.Type),
		Revenue:         revenue,
		Period:          period,
	}, false)
}

// FeeFor answers which fee the partner earns for an achievement on an
// operation type
func (h *PartnerHandler) FeeFor(c *gin.Context) {
	id, ok := h.partnerID(c)
	if !ok {
		return
	}

	var req FeeQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.app.Execute(c.Request.Context(), apppartner.QueryFeeFor, apppartner.FeeForQuery{
		PartnerID:       id,
		AchievementType: shared.AchievementType(req.Achievement),
		OperationType:   shared.OperationType(req.Operation),
	}, nil)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	if result.Err != nil {
		h.DomainError(c, result.Err)
		return
	}

	fee, ok := result.Value.(valueobject.Fee)
	if !ok {
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "unexpected fee query result")
		return
	}
	h.Success(c, FeeResponse{Fee: fee.String()})
}

func (h *PartnerHandler) partnerID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.ValidationError(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "invalid partner id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *PartnerHandler) dispatch(c *gin.Context, command string, payload any, created bool) {
	result, err := h.app.Execute(c.Request.Context(), command, payload, nil)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	if result.Err != nil {
		h.DomainError(c, result.Err)
		return
	}

	p, ok := result.Value.(*partner.Partner)
	if !ok {
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "unexpected command result")
		return
	}
	if created {
		h.Created(c, newPartnerResponse(p))
		return
	}
	h.Success(c, newPartnerResponse(p))
}
