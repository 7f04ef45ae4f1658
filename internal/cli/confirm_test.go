package cli

import (
	"strings"
	"testing"
)

func useConfirm(t *testing.T, interactive bool, input string) {
	t.Helper()
	prevInput, prevInteractive, prevJSON := confirmInput, confirmInteractive, jsonOutput
	t.Cleanup(func() {
		confirmInput, confirmInteractive, jsonOutput = prevInput, prevInteractive, prevJSON
	})
	confirmInput = strings.NewReader(input)
	confirmInteractive = func() bool { return interactive }
	jsonOutput = false
}

func TestPromptForConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{" YES \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
	}
	for _, tt := range tests {
		useConfirm(t, true, tt.input)
		var got bool
		out := captureStdout(t, func() { got = promptForConfirm("Overwrite garage.yaml?") })
		if got != tt.want {
			t.Errorf("answer %q: got %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out, "Overwrite garage.yaml?") {
			t.Errorf("question not printed: %q", out)
		}
	}
}

func TestPromptForConfirmNonInteractive(t *testing.T) {
	useConfirm(t, false, "y\n")
	out := captureStdout(t, func() {
		if promptForConfirm("") {
			t.Fatalf("expected no without a terminal")
		}
	})
	if out != "" {
		t.Fatalf("nothing should be printed without a terminal, got %q", out)
	}

	useConfirm(t, true, "y\n")
	jsonOutput = true
	if promptForConfirm("") {
		t.Fatalf("expected no in JSON mode")
	}
}
