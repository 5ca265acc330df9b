package shell

import (
	"strings"
	"testing"
	"time"

	"github.com/drpriver/drsh/internal/atom"
	"github.com/drpriver/drsh/internal/ec"
	"github.com/drpriver/drsh/internal/environ"
	"github.com/drpriver/drsh/internal/platform"
)

func TestBuildPromptVisualLenExcludesEscapes(t *testing.T) {
	at := atom.NewTable()
	env := environ.New(at, platform.Linux)
	env.SetString("PWD", "/tmp")
	if err := env.RefreshCwd(); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, 8, 6, 9, 30, 0, 0, time.UTC)
	prompt, visualLen := buildPrompt(env, now)

	if strings.Contains(prompt, "\033[") == false {
		t.Fatalf("prompt has no escape sequences: %q", prompt)
	}
	if visualLen >= len(prompt) {
		t.Fatalf("visualLen = %d, want it smaller than the escape-laden prompt length %d", visualLen, len(prompt))
	}
	if !strings.Contains(prompt, "> ") {
		t.Fatalf("prompt = %q, want it to contain the glyph", prompt)
	}
}

func TestErrorLineIsTerseAndCRLFTerminated(t *testing.T) {
	line := errorLine(ec.NotFound)
	if line != "error\r\n" {
		t.Fatalf("errorLine() = %q, want %q", line, "error\r\n")
	}
}
