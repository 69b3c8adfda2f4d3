package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/dagukit/internal/enginetest"
	"github.com/aescanero/dagukit/pkg/builder"
	"github.com/aescanero/dagukit/pkg/client"
	"github.com/aescanero/dagukit/pkg/models"
)

const runDelay = 2 * time.Second

// newEngineClient starts an in-process engine and returns a client bound to
// a fresh random dag name, as one would use against a real engine.
func newEngineClient(t *testing.T) *client.Client {
	t.Helper()

	engine := enginetest.NewEngine(&enginetest.Config{RunDelay: runDelay})
	server := httptest.NewServer(engine.Handler())
	t.Cleanup(server.Close)

	c, err := client.New(&client.Config{
		BaseURL: server.URL + "/api/v2",
		DagName: uuid.New().String()[:8],
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, c.DeleteDag(context.Background()))
	})

	return c
}

// waitForTerminal polls until the run reports a terminal label.
func waitForTerminal(t *testing.T, c *client.Client, runID string) models.DagRunResult {
	t.Helper()

	deadline := time.Now().Add(runDelay + 10*time.Second)
	for time.Now().Before(deadline) {
		result, err := c.GetDagRunStatus(context.Background(), runID)
		require.NoError(t, err)
		if result.StatusLabel.IsTerminal() {
			return result
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatalf("dag-run %s did not reach a terminal state", runID)
	return models.DagRunResult{}
}

func TestPostAndRunDag(t *testing.T) {
	c := newEngineClient(t)
	ctx := context.Background()

	dag, err := builder.NewDag(c.DagName()).
		AddStep("step1", "echo 'Hello, World!'").
		AddStep("step2", "echo 'This is step 2'").
		Build()
	require.NoError(t, err)

	require.NoError(t, c.PostDag(ctx, dag))

	retrieved, err := c.GetDagSpec(ctx)
	require.NoError(t, err)
	assert.Equal(t, dag.Name, retrieved.Name)
	assert.Len(t, retrieved.Steps, len(dag.Steps))

	runID, err := c.StartDagRun(ctx, models.StartDagRun{DagName: models.Set(c.DagName())})
	require.NoError(t, err)
	assert.NotEmpty(t, runID.DagRunId)

	result, err := c.GetDagRunStatus(ctx, runID.DagRunId)
	require.NoError(t, err)
	assert.Equal(t, runID.DagRunId, result.DagRunId)
	assert.Equal(t, models.StatusRunning, result.StatusLabel)
	assert.Len(t, result.Nodes, len(dag.Steps))

	result = waitForTerminal(t, c, runID.DagRunId)
	assert.Equal(t, models.StatusSucceeded, result.StatusLabel)
	assert.Len(t, result.Nodes, 2)
}

func TestDuplicateDagIsConflict(t *testing.T) {
	c := newEngineClient(t)
	ctx := context.Background()

	dag, err := builder.NewDag(c.DagName()).AddStep("a", "true").Build()
	require.NoError(t, err)

	require.NoError(t, c.PostDag(ctx, dag))

	err = c.PostDag(ctx, dag)
	var conflict *client.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestSingletonRun(t *testing.T) {
	c := newEngineClient(t)
	ctx := context.Background()

	dag, err := builder.NewDag(c.DagName()).AddStep("a", "true").Build()
	require.NoError(t, err)
	require.NoError(t, c.PostDag(ctx, dag))

	_, err = c.StartDagRun(ctx, models.StartDagRun{})
	require.NoError(t, err)

	_, err = c.StartDagRun(ctx, models.StartDagRun{Singleton: models.Set(true)})
	var conflict *client.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestDeleteDagIdempotent(t *testing.T) {
	c := newEngineClient(t)
	ctx := context.Background()

	dag, err := builder.NewDag(c.DagName()).AddStep("a", "true").Build()
	require.NoError(t, err)
	require.NoError(t, c.PostDag(ctx, dag))

	require.NoError(t, c.DeleteDag(ctx))
	// Second delete hits a missing DAG and is still a success.
	require.NoError(t, c.DeleteDag(ctx))
}

func TestHTTPExecutorStep(t *testing.T) {
	c := newEngineClient(t)
	ctx := context.Background()

	var (
		mu       sync.Mutex
		captured []byte
		method   string
		header   string
	)
	endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		mu.Lock()
		captured = body
		method = r.Method
		header = r.Header.Get("X-Request-Source")
		mu.Unlock()
	}))
	t.Cleanup(endpoint.Close)

	step, err := builder.NewStep("notify", "POST "+endpoint.URL).
		HTTPExecutor(builder.HTTPExecutorOptions{
			Headers: map[string]string{"X-Request-Source": "dagukit"},
			Body:    map[string]any{"k": "v"},
			Timeout: 10,
		}).
		Build()
	require.NoError(t, err)
	assert.Equal(t, `{"k":"v"}`, step.Executor.Config["body"])

	dag, err := builder.NewDag(c.DagName()).AddStepModels(step).Build()
	require.NoError(t, err)
	require.NoError(t, c.PostDag(ctx, dag))

	runID, err := c.StartDagRun(ctx, models.StartDagRun{})
	require.NoError(t, err)

	result := waitForTerminal(t, c, runID.DagRunId)
	assert.Equal(t, models.StatusSucceeded, result.StatusLabel)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "dagukit", header)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(captured, &decoded))
	assert.Equal(t, map[string]string{"k": "v"}, decoded)
}

func TestRunStatusNotFound(t *testing.T) {
	c := newEngineClient(t)

	dag, err := builder.NewDag(c.DagName()).AddStep("a", "true").Build()
	require.NoError(t, err)
	require.NoError(t, c.PostDag(context.Background(), dag))

	_, err = c.GetDagRunStatus(context.Background(), "no-such-run")
	var notFound *client.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
