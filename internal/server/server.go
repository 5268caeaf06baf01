// Package server exposes the runner over HTTP.
//
// Routes:
//
//	GET  /healthz       liveness
//	POST /v1/solve      solve one inline network
//	GET  /v1/runs       run history, newest first (?limit=N)
//	GET  /v1/runs/:id   one stored run
//	GET  /metrics       Prometheus exposition
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/valvenet/internal/config"
	"github.com/katalvlaran/valvenet/internal/runner"
	"github.com/katalvlaran/valvenet/internal/store"
	"github.com/katalvlaran/valvenet/loader"
	"github.com/katalvlaran/valvenet/network"
)

// defaultListLimit caps GET /v1/runs without an explicit limit.
const defaultListLimit = 50

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	Name   string          `json:"name"`
	Start  string          `json:"start"`
	Agents int             `json:"agents" binding:"required,min=1,max=2"`
	Budget int             `json:"budget" binding:"gte=0"`
	Valves []network.Valve `json:"valves" binding:"required,min=1"`
}

// SolveResponse wraps the stored run. Error is set when the search stopped
// early and Run holds the best score found until then.
type SolveResponse struct {
	Run   store.Run `json:"run"`
	Error string    `json:"error,omitempty"`
}

// New builds the gin engine serving r.
func New(r *runner.Runner, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1 := router.Group("/v1")
	v1.POST("/solve", Solve(r))
	v1.GET("/runs", ListRuns(r))
	v1.GET("/runs/:id", GetRun(r))
	if r.Metrics != nil {
		router.GET("/metrics", gin.WrapH(r.Metrics.Handler()))
	}
	return router
}

// Solve handles POST /v1/solve.
func Solve(r *runner.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SolveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		inst, err := loader.Build(c.Request.Context(), req.Valves, req.Start)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		name := req.Name
		if name == "" {
			name = "api"
		}

		run, err := r.Run(c.Request.Context(), inst, config.Scenario{Name: name, Agents: req.Agents, Budget: req.Budget})
		switch {
		case err == nil:
			c.JSON(http.StatusOK, SolveResponse{Run: run})
		case runner.Stopped(err):
			c.JSON(http.StatusOK, SolveResponse{Run: run, Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

// ListRuns handles GET /v1/runs.
func ListRuns(r *runner.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultListLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
				return
			}
			limit = n
		}
		runs, err := r.History(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if runs == nil {
			runs = []store.Run{}
		}
		c.JSON(http.StatusOK, gin.H{"runs": runs})
	}
}

// GetRun handles GET /v1/runs/:id.
func GetRun(r *runner.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		run, err := r.Lookup(c.Request.Context(), c.Param("id"))
		switch {
		case err == nil:
			c.JSON(http.StatusOK, run)
		case errors.Is(err, store.ErrNotFound), errors.Is(err, runner.ErrNoStore):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(began),
		)
	}
}
