package handlers

import (
	"net/http"

	"slotwise/services/tier"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

type TierHandler struct {
	Service tier.TierService
}

func NewTierHandler(svc tier.TierService) *TierHandler {
	return &TierHandler{Service: svc}
}

func (h *TierHandler) GetTier(c *gin.Context) {
	t, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
