package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aescanero/dagukit/internal/config"
	"github.com/aescanero/dagukit/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/dagukit/pkg/builder"
	"github.com/aescanero/dagukit/pkg/client"
	"github.com/aescanero/dagukit/pkg/models"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

// stepFlags collects repeated -step name=command flags in order.
type stepFlags []string

func (s *stepFlags) String() string { return strings.Join(*s, ", ") }

func (s *stepFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("step must be in name=command form, got %q", v)
	}
	*s = append(*s, v)
	return nil
}

func main() {
	var (
		name     = flag.String("name", "", "DAG name (defaults to DAGUKIT_DAG_NAME)")
		schedule = flag.String("schedule", "", "cron schedule expression")
		tags     = flag.String("tags", "", "comma-separated tags")
		params   = flag.String("params", "", "params string passed to the run")
		watch    = flag.Bool("watch", true, "poll run status until a terminal state")
		steps    stepFlags
	)
	flag.Var(&steps, "step", "step as name=command (repeatable, order preserved)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	dagName := *name
	if dagName == "" {
		dagName = cfg.DagName
	}
	if dagName == "" || len(steps) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: dagukit -name NAME -step name=command [-step ...] [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger.Info("starting dagukit",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("dag", dagName))

	dag, err := buildDag(dagName, *schedule, *tags, steps)
	if err != nil {
		logger.Fatal("invalid DAG specification", zap.Error(err))
	}

	cli, err := client.New(&client.Config{
		BaseURL:    cfg.BaseURL,
		DagName:    dagName,
		AuthToken:  cfg.AuthToken,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		Logger:     logger,
		Metrics:    prometheus.NewCollector(),
	})
	if err != nil {
		logger.Fatal("failed to create client", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.PostDag(ctx, dag); err != nil {
		var conflict *client.ConflictError
		if !errors.As(err, &conflict) {
			logger.Fatal("failed to submit DAG", zap.Error(err))
		}
		logger.Info("DAG already exists, starting a run of the stored spec")
	}

	start := models.StartDagRun{DagName: models.Set(dagName)}
	if *params != "" {
		start.Params = models.Set(*params)
	}

	runID, err := cli.StartDagRun(ctx, start)
	if err != nil {
		logger.Fatal("failed to start dag-run", zap.Error(err))
	}
	logger.Info("dag-run started", zap.String("dag_run_id", runID.DagRunId))

	if !*watch {
		return
	}

	label, err := watchRun(ctx, cli, runID.DagRunId, cfg, logger)
	if err != nil {
		logger.Fatal("failed to watch dag-run", zap.Error(err))
	}
	if label != models.StatusSucceeded {
		logger.Error("dag-run finished", zap.String("status", string(label)))
		os.Exit(1)
	}
	logger.Info("dag-run finished", zap.String("status", string(label)))
}

// buildDag assembles the Dag from CLI flags.
func buildDag(name, schedule, tags string, steps stepFlags) (models.Dag, error) {
	b := builder.NewDag(name).Schedule(schedule)
	if tags != "" {
		b.Tags(strings.Split(tags, ",")...)
	}
	for _, s := range steps {
		stepName, command, _ := strings.Cut(s, "=")
		b.AddStep(stepName, command)
	}
	return b.Build()
}

// watchRun polls the run status until a terminal label or the poll timeout.
// Not-found answers shortly after the start are retried; the engine's state
// may not be visible yet.
func watchRun(ctx context.Context, cli *client.Client, runID string, cfg *config.Config, logger *zap.Logger) (models.StatusLabel, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.PollTimeout)
	defer cancel()

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		result, err := cli.GetDagRunStatus(ctx, runID)
		if err != nil {
			var notFound *client.NotFoundError
			if !errors.As(err, &notFound) {
				return "", err
			}
		} else {
			for _, node := range result.Nodes {
				logger.Debug("node status",
					zap.String("step", node.Name),
					zap.String("status", string(node.StatusLabel)))
			}
			if result.StatusLabel.IsTerminal() {
				return result.StatusLabel, nil
			}
			logger.Info("dag-run in progress", zap.String("status", string(result.StatusLabel)))
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
