package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appstrategy "github.com/realestate/backend/internal/application/strategy"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
	"github.com/realestate/backend/internal/domain/strategy"
	"github.com/realestate/backend/internal/interfaces/http/dto"
)

// StrategyHandler handles strategy API endpoints
type StrategyHandler struct {
	BaseHandler
	app Commander
}

// NewStrategyHandler creates a new StrategyHandler
func NewStrategyHandler(app Commander) *StrategyHandler {
	return &StrategyHandler{app: app}
}

// CreateStrategyRequest is the payload for creating a strategy
type CreateStrategyRequest struct {
	Name          string    `json:"name" binding:"required"`
	PartnerID     string    `json:"partner_id" binding:"required,uuid"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required,gtfield=StartDate"`
	TargetRevenue float64   `json:"target_revenue" binding:"required,gt=0"`
	Currency      string    `json:"currency" binding:"omitempty,oneof=ARS USD"`
}

// ExtendStrategyRequest pushes an active strategy's end date out
type ExtendStrategyRequest struct {
	Days int `json:"days" binding:"required,gt=0"`
}

// StrategyResponse is the API shape of a strategy
type StrategyResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	PartnerID     uuid.UUID `json:"partner_id"`
	Status        string    `json:"status"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	TargetRevenue string    `json:"target_revenue"`
}

func newStrategyResponse(s *strategy.Strategy) StrategyResponse {
	return StrategyResponse{
		ID:            s.ID,
		Name:          s.Name,
		PartnerID:     s.PartnerID,
		Status:        string(s.Status),
		StartDate:     s.Range.Start(),
		EndDate:       s.Range.End(),
		TargetRevenue: s.TargetRevenue.String(),
	}
}

// RegisterRoutes registers strategy routes
func (h *StrategyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	strategies := rg.Group("/strategies")
	{
		strategies.POST("", h.Create)
		strategies.POST("/:id/activate", h.Activate)
		strategies.POST("/:id/extend", h.Extend)
		strategies.POST("/:id/stop", h.Stop)
	}
}

// Create creates a strategy in draft state
func (h *StrategyHandler) Create(c *gin.Context) {
	var req CreateStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	partnerID, err := uuid.Parse(req.PartnerID)
	if err != nil {
		h.BadRequest(c, "invalid partner id")
		return
	}
	dateRange, err := valueobject.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	currency := valueobject.DefaultCurrency
	if req.Currency != "" {
		currency = valueobject.Currency(req.Currency)
	}
	target, err := valueobject.NewMoneyFromFloat(req.TargetRevenue, currency)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.dispatch(c, appstrategy.CommandCreate, appstrategy.CreateCommand{
		Name:          req.Name,
		PartnerID:     partnerID,
		Range:         dateRange,
		TargetRevenue: target,
	}, true)
}

// Activate starts a draft strategy
func (h *StrategyHandler) Activate(c *gin.Context) {
	id, ok := h.strategyID(c)
	if !ok {
		return
	}
	h.dispatch(c, appstrategy.CommandActivate, appstrategy.ActivateCommand{StrategyID: id}, false)
}

// Extend pushes the strategy's end date out
func (h *StrategyHandler) Extend(c *gin.Context) {
	id, ok := h.strategyID(c)
	if !ok {
		return
	}

	var req ExtendStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	h.dispatch(c, appstrategy.CommandExtend, appstrategy.ExtendCommand{
		StrategyID: id,
		Days:       req.Days,
	}, false)
}

// Stop ends an active strategy now
func (h *StrategyHandler) Stop(c *gin.Context) {
	id, ok := h.strategyID(c)
	if !ok {
		return
	}
	h.dispatch(c, appstrategy.CommandStop, appstrategy.StopCommand{StrategyID: id}, false)
}

func (h *StrategyHandler) strategyID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.ValidationError(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "invalid strategy id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *StrategyHandler) dispatch(c *gin.Context, command string, payload any, created bool) {
	result, err := h.app.Execute(c.Request.Context(), command, payload, nil)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	if result.Err != nil {
		h.DomainError(c, result.Err)
		return
	}

	s, ok := result.Value.(*strategy.Strategy)
	if !ok {
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "unexpected command result")
		return
	}
	if created {
		h.Created(c, newStrategyResponse(s))
		return
	}
	h.Success(c, newStrategyResponse(s))
}
