package gitx_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/skaphos/gitbuddy/internal/gitx"
)

// MockRunner implements gitx.Runner for testing.
type MockRunner struct {
	// Responses maps "dir:args" keys to outcomes.
	Responses map[string]gitx.Outcome
	// Calls records every "args" string in order.
	Calls []string
}

func (m *MockRunner) Run(_ context.Context, dir string, args ...string) gitx.Outcome {
	joined := strings.Join(args, " ")
	m.Calls = append(m.Calls, joined)
	if resp, ok := m.Responses[dir+":"+joined]; ok {
		return resp
	}
	// Also try without dir for convenience
	if resp, ok := m.Responses[":"+joined]; ok {
		return resp
	}
	return gitx.Outcome{Output: fmt.Sprintf("unexpected call: dir=%q args=%v", dir, args), ExitCode: 1}
}

func ok(output string) gitx.Outcome {
	return gitx.Outcome{OK: true, Output: output}
}

func fail(output string) gitx.Outcome {
	return gitx.Outcome{Output: output, ExitCode: 1}
}
