package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/Axle-Bucamp/bytebot/internal/providers"
	"github.com/Axle-Bucamp/bytebot/internal/schema"
)

// fakeRunner returns scripted answers or errors, one per call.
type fakeRunner struct {
	answers []string
	errs    []error
	calls   int
	history *schema.Conversation
}

func (r *fakeRunner) Run(_ context.Context, conversation *schema.Conversation, _ func(string)) (string, error) {
	i := r.calls
	r.calls++
	r.history = conversation
	if i < len(r.errs) && r.errs[i] != nil {
		return "", r.errs[i]
	}
	if i < len(r.answers) {
		return r.answers[i], nil
	}
	return "ok", nil
}

func TestInteractiveSurvivesInterrupt(t *testing.T) {
	// First task is interrupted, second completes; the session must keep
	// running and both user turns must stay in the conversation.
	runner := &fakeRunner{
		errs:    []error{providers.ErrInterrupted, nil},
		answers: []string{"", "done"},
	}

	input := strings.NewReader("open firefox\ncheck the result\nexit\n")
	if err := runInteractive(runner, input); err != nil {
		t.Fatalf("runInteractive returned error: %v", err)
	}

	if runner.calls != 2 {
		t.Fatalf("runner called %d times, want 2 (interrupt must not end the session)", runner.calls)
	}
	if got := len(runner.history.Messages); got != 2 {
		t.Fatalf("conversation has %d messages, want 2", got)
	}
	if runner.history.Messages[0].Content[0].Text != "open firefox" {
		t.Errorf("first turn = %+v", runner.history.Messages[0].Content[0])
	}
	if runner.history.Messages[1].Content[0].Text != "check the result" {
		t.Errorf("second turn = %+v", runner.history.Messages[1].Content[0])
	}
}

func TestInteractiveExitCommands(t *testing.T) {
	runner := &fakeRunner{}
	input := strings.NewReader("  \n/quit\n")
	if err := runInteractive(runner, input); err != nil {
		t.Fatalf("runInteractive returned error: %v", err)
	}
	if runner.calls != 0 {
		t.Errorf("blank lines and exit commands must not reach the runner, got %d calls", runner.calls)
	}
}

func TestSingleTaskInterruptedIsNotAnError(t *testing.T) {
	runner := &fakeRunner{errs: []error{providers.ErrInterrupted}}
	if err := runSingleTask(runner, "open firefox"); err != nil {
		t.Fatalf("interrupted single task must exit cleanly, got %v", err)
	}
}
