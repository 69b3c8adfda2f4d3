package validate

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/aescanero/dagukit/pkg/models"
)

// HTTPCommand checks that command parses as "METHOD URL" with a known HTTP
// method (case-insensitive) and a non-empty URL, returning the canonical
// upper-case method and the URL.
func HTTPCommand(command string) (method, url string, err error) {
	parts := strings.Fields(command)
	if len(parts) != 2 {
		return "", "", fieldErrorf("command",
			"HTTP executor command must be in format %q, got %q", "METHOD URL", command)
	}

	method = strings.ToUpper(parts[0])
	for _, m := range models.HTTPMethods {
		if method == m {
			return method, parts[1], nil
		}
	}

	return "", "", fieldErrorf("command",
		"HTTP executor method must be one of %s, got %q",
		strings.Join(models.HTTPMethods, ", "), parts[0])
}

// CoerceBody turns an HTTP executor body into its wire form. A string passes
// through unchanged, so the function is idempotent; any other value is
// serialized once to compact JSON with deterministic key order and no
// whitespace between tokens ({"k":"v"}, not {"k": "v"}).
func CoerceBody(body any) (string, error) {
	if s, ok := body.(string); ok {
		return s, nil
	}

	// encoding/json sorts map keys, making the output stable.
	data, err := json.Marshal(body)
	if err != nil {
		return "", fieldErrorf("body", "value is not serializable to JSON: %v", err)
	}

	return string(data), nil
}

// Positive rejects non-positive integer bounds such as maxActiveRuns and
// the HTTP executor timeout.
func Positive(field string, n int) error {
	if n < 1 {
		return fieldErrorf(field, "must be a positive integer, got %d", n)
	}
	return nil
}

// StepNames checks the cross-step invariants of a Dag: step names are unique,
// a depends reference never points at the step itself, and it names a step
// added earlier in the Dag. Requiring the reference to look backwards rules
// out cycles without a graph walk.
func StepNames(steps []models.Step) error {
	names := make(map[string]bool, len(steps))
	for i, step := range steps {
		if step.Name == "" {
			return fieldErrorf(stepField(i, "name"), "step name is required")
		}
		if names[step.Name] {
			return fieldErrorf(stepField(i, "name"), "duplicate step name %q", step.Name)
		}

		if dep, ok := step.Depends.Get(); ok {
			if dep == step.Name {
				return fieldErrorf(stepField(i, "depends"), "step %q cannot depend on itself", step.Name)
			}
			// Only names seen so far are valid targets.
			if !names[dep] {
				return fieldErrorf(stepField(i, "depends"), "depends references no prior step %q", dep)
			}
		}

		names[step.Name] = true
	}

	return nil
}

func stepField(i int, name string) string {
	return "steps[" + strconv.Itoa(i) + "]." + name
}
