package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lumen/internal/api"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 14
	statusIndent     = "  "
)

var modeTitle = cases.Title(language.Und)

// modeLabel renders "CLOCK" as "Clock".
func modeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Unknown"
	}
	return modeTitle.String(strings.ToLower(value))
}

func renderStatus(addr, liveness string, state api.State, colorize bool) string {
	var lines []string
	lines = append(lines, renderSectionHeader("lumen", colorize)...)

	daemonKind := statusOK
	daemonMsg := fmt.Sprintf("%s (%s)", liveness, addr)
	if !state.Running {
		daemonKind = statusWarn
		daemonMsg = fmt.Sprintf("%s (%s, worker stopped)", liveness, addr)
	}
	lines = append(lines, renderStatusLine("Daemon", daemonKind, daemonMsg, colorize))
	lines = append(lines, renderStatusLine("Mode", statusInfo, modeLabel(state.Mode), colorize))

	commands := fmt.Sprintf("%d applied, %d rejected, %d transitions", state.Applied, state.Rejected, state.Transitions)
	lines = append(lines, renderStatusLine("Commands", statusInfo, commands, colorize))
	if state.LastError != "" {
		lines = append(lines, renderStatusLine("Last error", statusError, state.LastError, colorize))
	}
	if state.UpdatedAt != "" {
		lines = append(lines, renderStatusLine("Updated", statusInfo, state.UpdatedAt, colorize))
	}

	out := strings.Join(lines, "\n") + "\n"
	if len(state.Timers) == 0 {
		return out + statusIndent + "No timers\n"
	}
	return out + renderTimerTable(state.Timers) + "\n"
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
