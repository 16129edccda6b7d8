package handlers

import (
	"net/http"

	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves services, their weekly templates and free slots.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
	Logger  *zap.Logger
}

func NewAvailabilityHandler(svc availability.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, Logger: logger}
}

type createServiceRequest struct {
	Name string                   `json:"name" binding:"required"`
	Days []models.AvailabilityDay `json:"days"`
}

type templateRequest struct {
	Days []models.AvailabilityDay `json:"days"`
}

func (h *AvailabilityHandler) CreateService(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	svc, days, err := h.Service.CreateService(c.Request.Context(), caller.ID, req.Name, req.Days)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": svc, "availability": days})
}

func (h *AvailabilityHandler) ListProviderServices(c *gin.Context) {
	services, err := h.Service.ListProviderServices(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *AvailabilityHandler) GetTemplate(c *gin.Context) {
	days, err := h.Service.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"serviceId": c.Param("id"), "days": days})
}

func (h *AvailabilityHandler) ReplaceTemplate(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	days, err := h.Service.ReplaceTemplate(c.Request.Context(), caller.ID, c.Param("id"), req.Days)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"serviceId": c.Param("id"), "days": days})
}

// GetSlots returns free and occupied intervals for ?date=YYYY-MM-DD.
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "date query parameter is required", "validation")
		return
	}
	slots, err := h.Service.AvailableIntervals(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
