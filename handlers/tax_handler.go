package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/filebright/filebright-backend/errors"
	"github.com/filebright/filebright-backend/internal/tax/state"
	"github.com/filebright/filebright-backend/services"
	"github.com/filebright/filebright-backend/types"
)

type TaxHandler struct {
	calculations *services.CalculationService
}

func NewTaxHandler(calculations *services.CalculationService) *TaxHandler {
	return &TaxHandler{calculations: calculations}
}

// CalculateRequest is the body of POST /v1/tax/calculate.
type CalculateRequest struct {
	PersonalInfo types.PersonalInfo       `json:"personalInfo"`
	Options      types.CalculationOptions `json:"options"`
}

// Calculate rebuilds the ledger from the caller's processed documents and
// runs the unified federal/state calculation.
func (h *TaxHandler) Calculate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid request body", err.Error()))
		return
	}

	result, err := h.calculations.Calculate(c.Request.Context(), userID, req.PersonalInfo, req.Options)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// StateProfile returns the tax regime summary for one state.
func (h *TaxHandler) StateProfile(c *gin.Context) {
	profile, ok := state.GetProfile(c.Param("code"))
	if !ok {
		_ = c.Error(apperrors.NotFound("State", c.Param("code")))
		return
	}
	c.JSON(http.StatusOK, profile)
}
