package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/gauge/internal/reardiff"
)

// statusPicker is the modal for reassigning a media item's pipeline status.
type statusPicker struct {
	hash  string
	title string
	index int
}

// confirmPrompt gates a destructive media action behind an explicit y.
type confirmPrompt struct {
	view       View
	desc       string
	prompt     string
	invalidate []string
	call       func(context.Context) (reardiff.Record, error)
}

func (m Model) handleMediaKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panes[ViewMedia]

	switch msg.String() {
	case "e":
		rec := p.selected()
		if rec == nil {
			return m, nil
		}
		picker := &statusPicker{
			hash:  rec.String("hash"),
			title: rec.String("media_title"),
		}
		current := rec.String("pipeline_status")
		for i, status := range reardiff.PipelineStatuses {
			if status == current {
				picker.index = i
				break
			}
		}
		m.picker = picker
		return m, nil

	case "D":
		return m.confirmMediaAction("soft-delete", "Soft-delete", m.client.SoftDeleteMedia)
	case "P":
		return m.confirmMediaAction("promote", "Promote", m.client.PromoteMedia)
	case "F":
		return m.confirmMediaAction("finish", "Finish", m.client.FinishMedia)

	case "/":
		return m.startSearch()
	}

	return m.handleTableKey(msg)
}

func (m Model) confirmMediaAction(desc, verb string, call func(context.Context, string) (reardiff.Record, error)) (tea.Model, tea.Cmd) {
	rec := m.panes[ViewMedia].selected()
	if rec == nil {
		return m, nil
	}
	hash := rec.String("hash")
	title := rec.String("media_title")
	if title == "" {
		title = hash
	}
	m.confirm = &confirmPrompt{
		view:       ViewMedia,
		desc:       desc + " " + hash,
		prompt:     fmt.Sprintf("%s %q? (y/esc)", verb, truncate(title, 60)),
		invalidate: []string{reardiff.EndpointMedia},
		call: func(ctx context.Context) (reardiff.Record, error) {
			return call(ctx, hash)
		},
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	picker := m.picker

	switch msg.String() {
	case "esc", "q":
		m.picker = nil
		return m, nil

	case "up", "k":
		picker.index--
		if picker.index < 0 {
			picker.index = len(reardiff.PipelineStatuses) - 1
		}
		return m, nil

	case "down", "j":
		picker.index = (picker.index + 1) % len(reardiff.PipelineStatuses)
		return m, nil

	case "enter":
		status := reardiff.PipelineStatuses[picker.index]
		hash := picker.hash
		m.picker = nil
		m.panes[ViewMedia].phase = phaseSubmitting
		return m, m.mutateCmd(ViewMedia, "status "+status+" for "+hash, []string{reardiff.EndpointMedia},
			func(ctx context.Context) (reardiff.Record, error) {
				return m.client.UpdatePipeline(ctx, hash, status)
			})
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirm := m.confirm

	switch msg.String() {
	case "y", "enter":
		m.confirm = nil
		m.panes[confirm.view].phase = phaseSubmitting
		return m, m.mutateCmd(confirm.view, confirm.desc, confirm.invalidate, confirm.call)

	case "n", "esc", "q":
		m.confirm = nil
		return m, nil
	}

	return m, nil
}

func (m Model) renderPicker() string {
	styles := m.theme.Styles()
	picker := m.picker

	title := picker.title
	if title == "" {
		title = picker.hash
	}
	lines := []string{
		styles.AccentText.Render("Pipeline status for " + truncate(title, 60)),
		"",
	}
	for i, status := range reardiff.PipelineStatuses {
		marker := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.statusColor(status)))
		if i == picker.index {
			marker = "> "
			style = style.Bold(true).Background(lipgloss.Color(m.theme.SelectionBg))
		}
		lines = append(lines, marker+style.Render(status))
	}
	lines = append(lines, "", styles.MutedText.Render("enter apply · esc cancel"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderConfirm() string {
	styles := m.theme.Styles()
	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(styles.DangerText.Render(m.confirm.prompt))
}
