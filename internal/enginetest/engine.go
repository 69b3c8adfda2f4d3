package enginetest

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aescanero/dagukit/pkg/models"
)

// Config holds fake engine configuration.
type Config struct {
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// RunDelay is how long a started run reports "running" before reaching
	// its terminal state. Defaults to 100ms.
	RunDelay time.Duration
}

// Engine is an in-memory stand-in for the orchestration engine.
type Engine struct {
	router   *gin.Engine
	logger   *zap.Logger
	runDelay time.Duration
	executor *http.Client

	mu   sync.RWMutex
	dags map[string]models.Dag
	runs map[string]*run
}

// run tracks one started dag-run. The terminal state is decided at start
// time (failed if an http step could not be dispatched) and reported once
// the run delay has elapsed.
type run struct {
	dagName   string
	startedAt time.Time
	terminal  models.StatusLabel
	nodes     []string
}

// errorResponse mirrors the engine's error envelope.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEngine creates a fake engine.
func NewEngine(cfg *Config) *Engine {
	gin.SetMode(gin.ReleaseMode)

	e := &Engine{
		logger:   cfg.Logger,
		runDelay: cfg.RunDelay,
		executor: &http.Client{Timeout: 5 * time.Second},
		dags:     make(map[string]models.Dag),
		runs:     make(map[string]*run),
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.runDelay == 0 {
		e.runDelay = 100 * time.Millisecond
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(e.logger))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v2 := router.Group("/api/v2")
	{
		v2.POST("/dags", e.handlePostDag)
		v2.GET("/dags/:name", e.handleGetDag)
		v2.DELETE("/dags/:name", e.handleDeleteDag)
		v2.POST("/dags/:name/start", e.handleStartDagRun)
		v2.GET("/dag-runs/:id", e.handleGetDagRun)
	}

	e.router = router
	return e
}

// Handler returns the engine's HTTP handler, for use with httptest.Server.
func (e *Engine) Handler() http.Handler {
	return e.router
}

// handlePostDag stores a submitted Dag specification.
func (e *Engine) handlePostDag(c *gin.Context) {
	var dag models.Dag
	if err := c.ShouldBindJSON(&dag); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: errorDetail{Code: "bad_request", Message: err.Error()},
		})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.dags[dag.Name]; exists {
		c.JSON(http.StatusConflict, errorResponse{
			Error: errorDetail{Code: "already_exists", Message: "DAG " + dag.Name + " already exists"},
		})
		return
	}

	e.dags[dag.Name] = dag
	c.Status(http.StatusCreated)
}

// handleGetDag returns a stored Dag specification.
func (e *Engine) handleGetDag(c *gin.Context) {
	name := c.Param("name")

	e.mu.RLock()
	dag, ok := e.dags[name]
	e.mu.RUnlock()

	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: "DAG " + name + " not found"},
		})
		return
	}

	c.JSON(http.StatusOK, dag)
}

// handleDeleteDag removes a stored Dag.
func (e *Engine) handleDeleteDag(c *gin.Context) {
	name := c.Param("name")

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.dags[name]; !ok {
		c.JSON(http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: "DAG " + name + " not found"},
		})
		return
	}

	delete(e.dags, name)
	c.Status(http.StatusNoContent)
}

// handleStartDagRun starts a run of a stored Dag. Steps with an http
// executor are dispatched immediately; the run reports "running" until the
// run delay elapses.
func (e *Engine) handleStartDagRun(c *gin.Context) {
	name := c.Param("name")

	var req models.StartDagRun
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: errorDetail{Code: "bad_request", Message: err.Error()},
		})
		return
	}

	e.mu.Lock()
	dag, ok := e.dags[name]
	if !ok {
		e.mu.Unlock()
		c.JSON(http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: "DAG " + name + " not found"},
		})
		return
	}

	if req.Singleton.OrZero() {
		for _, r := range e.runs {
			if r.dagName == name && time.Since(r.startedAt) < e.runDelay {
				e.mu.Unlock()
				c.JSON(http.StatusConflict, errorResponse{
					Error: errorDetail{Code: "already_running", Message: "DAG " + name + " already has an active run"},
				})
				return
			}
		}
	}

	runID := req.DagRunId.OrZero()
	if runID == "" {
		runID = uuid.New().String()
	}

	e.mu.Unlock()

	// Dispatch outside the lock; the run becomes visible to status polls
	// only once all steps have been dispatched.
	r := &run{
		dagName:   name,
		startedAt: time.Now(),
		terminal:  models.StatusSucceeded,
	}
	for _, step := range dag.Steps {
		r.nodes = append(r.nodes, step.Name)
		if err := e.dispatchStep(step); err != nil {
			e.logger.Warn("step dispatch failed",
				zap.String("dag", name),
				zap.String("step", step.Name),
				zap.Error(err))
			r.terminal = models.StatusFailed
		}
	}

	e.mu.Lock()
	e.runs[runID] = r
	e.mu.Unlock()

	c.JSON(http.StatusOK, models.DagRunId{DagRunId: runID})
}

// handleGetDagRun reports the current snapshot of a dag-run.
func (e *Engine) handleGetDagRun(c *gin.Context) {
	id := c.Param("id")

	e.mu.RLock()
	r, ok := e.runs[id]
	e.mu.RUnlock()

	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: "dag-run " + id + " not found"},
		})
		return
	}

	label := models.StatusRunning
	if time.Since(r.startedAt) >= e.runDelay {
		label = r.terminal
	}

	result := models.DagRunResult{
		DagRunId:    id,
		StatusLabel: label,
	}
	for _, node := range r.nodes {
		result.Nodes = append(result.Nodes, models.NodeStatus{
			Name:        node,
			StatusLabel: label,
		})
	}

	c.JSON(http.StatusOK, result)
}

// requestLogger is a middleware for request logging.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Debug("engine request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
