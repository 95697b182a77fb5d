package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appoperation "github.com/realestate/backend/internal/application/operation"
	"github.com/realestate/backend/internal/domain/operation"
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
	"github.com/realestate/backend/internal/interfaces/http/dto"
)

// OperationHandler handles operation API endpoints
type OperationHandler struct {
	BaseHandler
	app Commander
}

// NewOperationHandler creates a new OperationHandler
func NewOperationHandler(app Commander) *OperationHandler {
	return &OperationHandler{app: app}
}

// OpenOperationRequest is the payload for opening an operation
type OpenOperationRequest struct {
	PropertyID string  `json:"property_id" binding:"required,uuid"`
	PartnerID  string  `json:"partner_id" binding:"required,uuid"`
	Type       string  `json:"type" binding:"required,oneof=sale rent"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Currency   string  `json:"currency" binding:"omitempty,oneof=ARS USD"`
}

// OperationResponse is the API shape of an operation
type OperationResponse struct {
	ID         uuid.UUID  `json:"id"`
	PropertyID uuid.UUID  `json:"property_id"`
	PartnerID  uuid.UUID  `json:"partner_id"`
	Type       string     `json:"type"`
	Amount     string     `json:"amount"`
	Status     string     `json:"status"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
}

func newOperationResponse(o *operation.Operation) OperationResponse {
	return OperationResponse{
		ID:         o.ID,
		PropertyID: o.PropertyID,
		PartnerID:  o.PartnerID,
		Type:       string(o.Type),
		Amount:     o.Amount.String(),
		Status:     string(o.Status),
		ClosedAt:   o.ClosedAt,
	}
}

// RegisterRoutes registers operation routes
func (h *OperationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	operations := rg.Group("/operations")
	{
		operations.POST("", h.Open)
		operations.POST("/:id/close", h.Close)
		operations.POST("/:id/cancel", h.Cancel)
	}
}

// Open opens a new operation for a property handled by a partner
func (h *OperationHandler) Open(c *gin.Context) {
	var req OpenOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		h.BadRequest(c, "invalid property id")
		return
	}
	partnerID, err := uuid.Parse(req.PartnerID)
	if err != nil {
		h.BadRequest(c, "invalid partner id")
		return
	}
	currency := valueobject.DefaultCurrency
	if req.Currency != "" {
		currency = valueobject.Currency(req.Currency)
	}
	amount, err := valueobject.NewMoneyFromFloat(req.Amount, currency)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.dispatch(c, appoperation.CommandOpen, appoperation.OpenCommand{
		PropertyID: propertyID,
		PartnerID:  partnerID,
		Type:       shared.OperationType(req.Type),
		Amount:     amount,
	}, true)
}

// Close completes an open operation and credits the partner's achievement
func (h *OperationHandler) Close(c *gin.Context) {
	id, ok := h.operationID(c)
	if !ok {
		return
	}
	h.dispatch(c, appoperation.CommandClose, appoperation.CloseCommand{OperationID: id}, false)
}

// Cancel abandons an open operation
func (h *OperationHandler) Cancel(c *gin.Context) {
	id, ok := h.operationID(c)
	if !ok {
		return
	}
	h.dispatch(c, appoperation.CommandCancel, appoperation.CancelCommand{OperationID: id}, false)
}

func (h *OperationHandler) operationID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.ValidationError(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "invalid operation id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *OperationHandler) dispatch(c *gin.Context, command string, payload any, created bool) {
	result, err := h.app.Execute(c.Request.Context(), command, payload, nil)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	if result.Err != nil {
		h.DomainError(c, result.Err)
		return
	}

	o, ok := result.Value.(*operation.Operation)
	if !ok {
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "unexpected command result")
		return
	}
	if created {
		h.Created(c, newOperationResponse(o))
		return
	}
	h.Success(c, newOperationResponse(o))
}
