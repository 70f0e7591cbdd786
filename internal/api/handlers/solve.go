package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ream-lab/catex/internal/api/models"
	"github.com/ream-lab/catex/internal/config"
	"github.com/ream-lab/catex/internal/expansion"
	"github.com/ream-lab/catex/internal/loader"
	"github.com/ream-lab/catex/internal/model"
	"github.com/ream-lab/catex/internal/results"
	"github.com/ream-lab/catex/internal/runopts"
	"github.com/ream-lab/catex/internal/solver"
	"github.com/ream-lab/catex/internal/solver/solvertest"

	"github.com/gin-gonic/gin"
)

// SolveHandler handles capacity-expansion solve requests
type SolveHandler struct {
	newModel func() solver.Model
}

// NewSolveHandler creates a solve handler. newModel supplies the solver
// backend per request; nil selects the built-in reference solver.
func NewSolveHandler(newModel func() solver.Model) *SolveHandler {
	if newModel == nil {
		newModel = func() solver.Model { return solvertest.New() }
	}
	return &SolveHandler{newModel: newModel}
}

// RunSolve handles POST /api/v1/solve
func (h *SolveHandler) RunSolve(c *gin.Context) {
	var req models.SolveRequest
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

	log.Printf("Solve: %d buses, %d generators, %d scenarios, %d timepoints",
		len(sys.Buses), len(sys.Generators), len(sys.Scenarios), len(sys.Timepoints))

	res, err := expansion.Run(ctx, m, sys, opts)
	if err != nil {
		writeSolveFailure(c, res, err)
		return
	}

	resp := models.SolveResponse{
		State:  res.State.String(),
		Status: res.Status.String(),
	}

	sum, err := results.Summary(m, sys, res)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RESULT_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	resp.Costs = &models.CostBreakdown{
		CostPerTimepoint: sum.CostPerTimepoint,
		CostPerPeriod:    sum.CostPerPeriod,
		TotalCost:        sum.TotalCost,
	}

	if err := fillCapacities(&resp, m, sys, res); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RESULT_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	if req.Output.WriteCSVs {
		if err := results.Write(req.MainDir, m, sys, res, opts); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "WRITE_ERROR",
					Message: err.Error(),
				},
			})
			return
		}
		resp.OutputsDir = req.MainDir + "/outputs"
		if req.Output.IncludeDump {
			if err := results.WriteModelDump(req.MainDir+"/outputs/model.txt", m, sys, res); err == nil {
				resp.DumpWritten = true
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// resolveOptions merges an optional base YAML config (as the CLI's --config
// flag loads) with per-request overrides; the CLI itself has no override
// flags.
func resolveOptions(ro models.RunOptions) (runopts.Options, time.Duration, error) {
	opts := runopts.Default()
	var timeout time.Duration

	if ro.ConfigFile != "" {
		cfg, err := config.Load(ro.ConfigFile)
		if err != nil {
			return opts, 0, err
		}
		opts = cfg.ToRunOptions()
		timeout = cfg.SolverTimeout()
	}

	switch ro.ExpectationMode {
	case "":
	case "source_compat":
		opts.ExpectationMode = runopts.SourceCompat
	case "probability_only":
		opts.ExpectationMode = runopts.ProbabilityOnly
	default:
		return opts, 0, errBadExpectationMode(ro.ExpectationMode)
	}

	if ro.IncludeShunts != nil {
		opts.IncludeShunts = *ro.IncludeShunts
	}
	if ro.PerLineFlowLimit != nil {
		opts.PerLineFlowLimit = *ro.PerLineFlowLimit
	}
	if ro.SolverTimeoutSeconds > 0 {
		timeout = time.Duration(ro.SolverTimeoutSeconds) * time.Second
	}
	return opts, timeout, nil
}

func writeSolveFailure(c *gin.Context, res *expansion.Result, err error) {
	status := http.StatusInternalServerError
	code := "SOLVE_ERROR"
	if res != nil {
		switch res.Status {
		case solver.StatusInfeasible:
			status = http.StatusUnprocessableEntity
			code = "INFEASIBLE"
		case solver.StatusUnbounded:
			status = http.StatusUnprocessableEntity
			code = "UNBOUNDED"
		}
	}
	detail := map[string]interface{}{}
	if res != nil {
		detail["state"] = res.State.String()
		detail["termination_status"] = res.Status.String()
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
			Details: detail,
		},
	})
}

func fillCapacities(resp *models.SolveResponse, m solver.Model, sys *model.System, res *expansion.Result) error {
	for _, g := range sys.Generators {
		if g.IsVariable() {
			for _, sc := range sys.Scenarios {
				v, err := m.Value(res.Generators.CapGV[g.Name][sc.Name])
				if err != nil {
					return err
				}
				resp.VarGenCap = append(resp.VarGenCap, models.VarGenCapacity{
					GenName:  g.Name,
					Scenario: sc.Name,
					Capacity: v,
				})
			}
			continue
		}
		v, err := m.Value(res.Generators.CapGN[g.Name])
		if err != nil {
			return err
		}
		resp.GenCap = append(resp.GenCap, models.GenCapacity{GenName: g.Name, Capacity: v})
	}

	for _, e := range sys.Storages {
		power, err := m.Value(res.Storages.PowerCap[e.Name])
		if err != nil {
			return err
		}
		energy, err := m.Value(res.Storages.EnergyCap[e.Name])
		if err != nil {
			return err
		}
		resp.StorageCap = append(resp.StorageCap, models.StorageCapacity{
			StorageName: e.Name,
			PowerCap:    power,
			EnergyCap:   energy,
		})
	}
	return nil
}

func errBadExpectationMode(mode string) error {
	return fmt.Errorf("expectation_mode must be \"source_compat\" or \"probability_only\", got %q", mode)
}
