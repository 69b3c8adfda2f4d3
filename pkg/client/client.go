package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aescanero/dagukit/pkg/models"
)

// DefaultTimeout is the HTTP timeout used when no transport is supplied.
const DefaultTimeout = 30 * time.Second

// Doer is the transport interface the client calls. Retries, backoff and
// connection handling live behind it, never in the client itself.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Recorder receives one observation per wire call. Implementations must be
// safe for concurrent use.
type Recorder interface {
	RecordOperation(operation, status string, elapsed time.Duration)
}

// nopRecorder discards all observations.
type nopRecorder struct{}

func (nopRecorder) RecordOperation(string, string, time.Duration) {}

// Config holds client configuration.
type Config struct {
	// BaseURL is the versioned API root, e.g. "http://localhost:8080/api/v2".
	BaseURL string
	// DagName is the Dag this client operates on.
	DagName string
	// AuthToken, when set, is sent as a bearer token on every request.
	AuthToken string
	// HTTPClient is the transport. Defaults to an http.Client with
	// DefaultTimeout.
	HTTPClient Doer
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Metrics defaults to a no-op recorder.
	Metrics Recorder
}

// Client performs the engine's HTTP operations for one Dag. All state is
// read-only after construction, so a single Client is safe for concurrent
// use.
type Client struct {
	baseURL   string
	dagName   string
	authToken string
	http      Doer
	logger    *zap.Logger
	metrics   Recorder
}

// New creates a client bound to the configured base URL and Dag name.
func New(cfg *Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.DagName == "" {
		return nil, fmt.Errorf("dag name is required")
	}

	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		dagName:   cfg.DagName,
		authToken: cfg.AuthToken,
		http:      cfg.HTTPClient,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: DefaultTimeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.metrics == nil {
		c.metrics = nopRecorder{}
	}

	return c, nil
}

// DagName returns the Dag this client is bound to.
func (c *Client) DagName() string {
	return c.dagName
}

// NewRunID returns a caller-supplied dag-run identifier suitable for
// StartDagRun.DagRunId.
func NewRunID() string {
	return uuid.New().String()
}

// PostDag submits a validated Dag specification to the engine. A duplicate
// name is reported as a ConflictError.
func (c *Client) PostDag(ctx context.Context, dag models.Dag) error {
	return c.call(ctx, "PostDag", http.MethodPost, "/dags", dag, nil)
}

// GetDagSpec retrieves the Dag specification stored by the engine for the
// bound name. Unknown response fields are ignored.
func (c *Client) GetDagSpec(ctx context.Context) (models.Dag, error) {
	var dag models.Dag
	err := c.call(ctx, "GetDagSpec", http.MethodGet, "/dags/"+url.PathEscape(c.dagName), nil, &dag)
	return dag, err
}

// StartDagRun asks the engine to start a run of the bound Dag. When the
// request sets Singleton and another run is active, the engine answers with
// a conflict.
func (c *Client) StartDagRun(ctx context.Context, req models.StartDagRun) (models.DagRunId, error) {
	var id models.DagRunId
	err := c.call(ctx, "StartDagRun", http.MethodPost, "/dags/"+url.PathEscape(c.dagName)+"/start", req, &id)
	return id, err
}

// GetDagRunStatus returns the engine's current snapshot of a dag-run. The
// engine is eventually consistent: a just-started run may still be reported
// as not found.
func (c *Client) GetDagRunStatus(ctx context.Context, dagRunID string) (models.DagRunResult, error) {
	var result models.DagRunResult
	err := c.call(ctx, "GetDagRunStatus", http.MethodGet, "/dag-runs/"+url.PathEscape(dagRunID), nil, &result)
	return result, err
}

// DeleteDag removes the bound Dag from the engine. A not-found answer is
// treated as success, making the operation idempotent.
func (c *Client) DeleteDag(ctx context.Context) error {
	err := c.call(ctx, "DeleteDag", http.MethodDelete, "/dags/"+url.PathEscape(c.dagName), nil, nil)
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

// call performs one wire call: marshal the request body, execute, decode
// either the success payload or the engine's error envelope.
func (c *Client) call(ctx context.Context, operation, method, path string, in, out any) error {
	start := time.Now()
	err := c.do(ctx, method, path, in, out)
	elapsed := time.Since(start)

	status := "success"
	switch err.(type) {
	case nil:
	case *ConflictError:
		status = "conflict"
	case *NotFoundError:
		status = "not_found"
	case *TransportError:
		status = "transport_error"
	default:
		status = "error"
	}
	c.metrics.RecordOperation(operation, status, elapsed)

	if err != nil {
		c.logger.Error("engine operation failed",
			zap.String("operation", operation),
			zap.String("dag", c.dagName),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return err
	}

	c.logger.Debug("engine operation",
		zap.String("operation", operation),
		zap.String("dag", c.dagName),
		zap.Duration("duration", elapsed))
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Operation: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Operation: method + " " + path,
			Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// decodeError maps an engine error answer to the typed error taxonomy.
func decodeError(resp *http.Response) error {
	var envelope errorResponse
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Error.Message == "" {
		envelope.Error.Message = strings.TrimSpace(string(data))
		if envelope.Error.Message == "" {
			envelope.Error.Message = resp.Status
		}
	}

	switch resp.StatusCode {
	case http.StatusConflict:
		return &ConflictError{Code: envelope.Error.Code, Message: envelope.Error.Message}
	case http.StatusNotFound:
		return &NotFoundError{Code: envelope.Error.Code, Message: envelope.Error.Message}
	default:
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       envelope.Error.Code,
			Message:    envelope.Error.Message,
		}
	}
}
