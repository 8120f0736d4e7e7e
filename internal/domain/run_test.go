package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewRunErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want RunErrorKind
	}{
		{"deadline", context.DeadlineExceeded, RunErrorTimeout},
		{"wrapped deadline", fmt.Errorf("generate: %w", context.DeadlineExceeded), RunErrorTimeout},
		{
			"unavailable backend",
			&OpError{Op: "ollama.generate", Kind: KindUnavailable, Err: ErrUnavailable},
			RunErrorConn,
		},
		{"connection refused", errors.New("dial tcp 127.0.0.1:11434: connection refused"), RunErrorConn},
		{"dns", errors.New("lookup ollama.local: no such host"), RunErrorConn},
		{"http status", errors.New("unexpected status 502"), RunErrorHTTP},
		{"anything else", errors.New("boom"), RunErrorUnknown},
	}

	for _, c := range cases {
		re := NewRunError(c.err)
		if re == nil {
			t.Fatalf("%s: nil RunError", c.name)
		}
		if re.Kind != c.want {
			t.Errorf("%s: kind = %q, want %q", c.name, re.Kind, c.want)
		}
		if re.Message == "" {
			t.Errorf("%s: empty message", c.name)
		}
	}

	if NewRunError(nil) != nil {
		t.Error("nil error should map to nil")
	}
}

func TestRunArtifactFailed(t *testing.T) {
	ok := RunArtifact{Steps: []StepResult{{Status: StepOK}, {Status: StepFallback}}}
	if ok.Failed() {
		t.Error("fallback steps should not fail the run")
	}

	withErr := RunArtifact{Error: &RunError{Kind: RunErrorModel}}
	if !withErr.Failed() {
		t.Error("run error should fail the run")
	}

	withStep := RunArtifact{Steps: []StepResult{{Status: StepFailed}}}
	if !withStep.Failed() {
		t.Error("failed step should fail the run")
	}
}
