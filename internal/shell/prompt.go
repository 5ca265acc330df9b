package shell

import (
	"time"

	"github.com/drpriver/drsh/internal/environ"
)

// buildPrompt renders the prompt line: a cyan timestamp, the green
// displayed cwd, a grey "> ", then a reset, matching the ANSI subset
// named in §6. It returns the full escape-laden string plus its
// visual column width with escapes excluded, which redisplay needs
// for its cursor-position arithmetic.
func buildPrompt(env *environ.Environment, now time.Time) (prompt string, visualLen int) {
	stamp := now.Format("01/02 3:04PM")
	cwd := env.DisplayedCwd()

	var b []byte
	b = append(b, "\033[36m"...)
	b = append(b, stamp...)
	b = append(b, ' ')
	b = append(b, "\033[0m"...)
	b = append(b, "\033[32m"...)
	b = append(b, cwd...)
	b = append(b, "\033[0m"...)
	b = append(b, "\033[38;5;248m"...)
	b = append(b, "> "...)
	b = append(b, "\033[0m"...)

	visualLen = len(stamp) + 1 + len(cwd) + 2
	return string(b), visualLen
}

// errorLine renders the terse terminal-facing diagnostic for a
// built-in or resolver failure; the detail goes to logger, not the
// terminal, matching the reference shell's bare "error\r\n" output.
func errorLine(err error) string {
	logger.Printf("%v", err)
	return "error\r\n"
}
