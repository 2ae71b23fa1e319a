package ui

import (
	"fmt"
	"strings"
	"time"
)

// truncate shortens s to max runes, appending an ellipsis when cut. A
// non-positive max yields the empty string; resizes can drive the budget
// below zero.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// humanizeAge renders how long ago t was, coarsely.
func humanizeAge(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

// classifyConnectionError turns a transport error into a short label.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "API not running"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "connection timeout"
	case strings.Contains(msg, "no such host"):
		return "host not found"
	default:
		return "connection failed"
	}
}
