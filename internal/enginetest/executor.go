package enginetest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aescanero/dagukit/pkg/models"
)

// dispatchStep performs the engine-side execution of a step's http executor:
// one outbound request of the exact form "METHOD URL" with the configured
// headers and body. Shell steps are not executed; the fake only needs their
// names for node statuses.
func (e *Engine) dispatchStep(step models.Step) error {
	if step.Executor == nil || step.Executor.Type != models.ExecutorTypeHTTP {
		return nil
	}

	method, target, ok := strings.Cut(step.Command, " ")
	if !ok {
		return fmt.Errorf("malformed http command %q", step.Command)
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	target = strings.TrimSpace(target)

	var body string
	headers := make(map[string]string)
	timeout := 5 * time.Second

	for key, value := range step.Executor.Config {
		switch key {
		case "body":
			if s, ok := value.(string); ok {
				body = s
			}
		case "timeout":
			// JSON numbers decode as float64.
			if f, ok := value.(float64); ok && f > 0 {
				timeout = time.Duration(f) * time.Second
			}
			if n, ok := value.(int); ok && n > 0 {
				timeout = time.Duration(n) * time.Second
			}
		case "headers":
			switch h := value.(type) {
			case map[string]string:
				for k, v := range h {
					headers[k] = v
				}
			case map[string]any:
				for k, v := range h {
					if s, ok := v.(string); ok {
						headers[k] = s
					}
				}
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.executor.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("endpoint answered %s", resp.Status)
	}

	return nil
}
