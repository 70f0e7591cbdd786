package handlers

import (
	"net/http"

	"github.com/ream-lab/catex/internal/api/models"
	"github.com/ream-lab/catex/internal/loader"

	"github.com/gin-gonic/gin"
)

// ValidateHandler loads and validates input CSVs without solving
type ValidateHandler struct{}

// NewValidateHandler creates a validate handler
func NewValidateHandler() *ValidateHandler {
	return &ValidateHandler{}
}

// Validate handles POST /api/v1/validate
func (h *ValidateHandler) Validate(c *gin.Context) {
	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	sys, err := loader.Load(req.MainDir)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "LOAD_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	varGens := 0
	for _, g := range sys.Generators {
		if g.IsVariable() {
			varGens++
		}
	}

	c.JSON(http.StatusOK, models.ValidateResponse{
		Valid:      true,
		SlackBus:   sys.SlackBus,
		Buses:      len(sys.Buses),
		Lines:      len(sys.Lines),
		Generators: len(sys.Generators),
		VarGens:    varGens,
		Storages:   len(sys.Storages),
		Scenarios:  len(sys.Scenarios),
		Timepoints: len(sys.Timepoints),
	})
}
