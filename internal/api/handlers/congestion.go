package handlers

import (
	"context"
	"net/http"

	"github.com/ream-lab/catex/internal/api/models"
	"github.com/ream-lab/catex/internal/expansion"
	"github.com/ream-lab/catex/internal/loader"
	"github.com/ream-lab/catex/internal/report"
	"github.com/ream-lab/catex/internal/solver"
	"github.com/ream-lab/catex/internal/solver/solvertest"

	"github.com/gin-gonic/gin"
)

// CongestionHandler solves a system and ranks buses by flow-limit binding
type CongestionHandler struct {
	newModel func() solver.Model
}

// NewCongestionHandler creates a congestion handler. newModel supplies the
// solver backend per request; nil selects the built-in reference solver.
func NewCongestionHandler(newModel func() solver.Model) *CongestionHandler {
	if newModel == nil {
		newModel = func() solver.Model { return solvertest.New() }
	}
	return &CongestionHandler{newModel: newModel}
}

// RankCongestion handles POST /api/v1/congestion
func (h *CongestionHandler) RankCongestion(c *gin.Context) {
	var req models.CongestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	opts, timeout, err := resolveOptions(req.Options)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	sys, err := loader.Load(req.MainDir)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "LOAD_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	m := h.newModel()

	ctx := c.Request.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res, err := expansion.Run(ctx, m, sys, opts)
	if err != nil {
		writeSolveFailure(c, res, err)
		return
	}

	ranks, err := report.Rank(m, sys, res, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RESULT_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	if req.Limit > 0 && req.Limit < len(ranks) {
		ranks = ranks[:req.Limit]
	}

	resp := models.CongestionResponse{Status: res.Status.String()}
	for _, r := range ranks {
		resp.Ranks = append(resp.Ranks, models.CongestionRow{
			BusName:       r.BusName,
			BindCount:     r.BindCount,
			TotalSamples:  r.TotalSamples,
			BindFrequency: r.BindFrequency,
		})
	}
	c.JSON(http.StatusOK, resp)
}
