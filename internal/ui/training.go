package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gauge/internal/reardiff"
)

func (m Model) handleTrainingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panes[ViewTraining]

	switch msg.String() {
	case "w":
		return m.labelSelected(ViewTraining, reardiff.LabelWouldWatch)
	case "n":
		return m.labelSelected(ViewTraining, reardiff.LabelWouldNotWatch)

	case "r":
		rec := p.selected()
		if rec == nil {
			return m, nil
		}
		id := rec.String("imdb_id")
		p.phase = phaseSubmitting
		return m, m.mutateCmd(ViewTraining, "reviewed "+id, []string{reardiff.EndpointTraining},
			func(ctx context.Context) (reardiff.Record, error) {
				return m.client.MarkReviewed(ctx, id)
			})

	case "a":
		rec := p.selected()
		if rec == nil {
			return m, nil
		}
		id := rec.String("imdb_id")
		target := !rec.Bool("anomalous")
		desc := "anomalous " + id
		if !target {
			desc = "cleared anomalous " + id
		}
		p.phase = phaseSubmitting
		return m, m.mutateCmd(ViewTraining, desc, []string{reardiff.EndpointTraining},
			func(ctx context.Context) (reardiff.Record, error) {
				return m.client.SetAnomalous(ctx, id, target)
			})

	case "f":
		switch p.reviewedFilter {
		case "unreviewed":
			p.reviewedFilter = "reviewed"
			p.params = p.params.WithFilter("reviewed", "true")
		case "reviewed":
			p.reviewedFilter = "all"
			p.params = p.params.WithFilter("reviewed", "")
		default:
			p.reviewedFilter = "unreviewed"
			p.params = p.params.WithFilter("reviewed", "false")
		}
		p.params.Page = 1
		return m.reload()

	case "A":
		switch p.anomalousFilter {
		case "yes":
			p.anomalousFilter = "no"
			p.params = p.params.WithFilter("anomalous", "false")
		case "no":
			p.anomalousFilter = "all"
			p.params = p.params.WithFilter("anomalous", "")
		default:
			p.anomalousFilter = "yes"
			p.params = p.params.WithFilter("anomalous", "true")
		}
		p.params.Page = 1
		return m.reload()

	case "/":
		return m.startSearch()
	}

	return m.handleTableKey(msg)
}

// labelSelected relabels the record under the cursor. Pressing the key for
// the label the record already carries degrades to a reviewed-only write,
// so confirming a correct label is one keystroke.
func (m Model) labelSelected(v View, label string) (tea.Model, tea.Cmd) {
	p := m.panes[v]
	rec := p.selected()
	if rec == nil {
		return m, nil
	}
	id := rec.String("imdb_id")

	invalidate := []string{reardiff.EndpointTraining}
	if v == ViewPredictions {
		// A relabel from the predictions view changes training data that
		// the prediction listing reflects, so both caches go.
		invalidate = append(invalidate, reardiff.EndpointPrediction)
	}

	if v == ViewTraining && rec.String("label") == label {
		p.phase = phaseSubmitting
		return m, m.mutateCmd(v, "confirmed "+id, invalidate,
			func(ctx context.Context) (reardiff.Record, error) {
				return m.client.MarkReviewed(ctx, id)
			})
	}

	p.phase = phaseSubmitting
	return m, m.mutateCmd(v, "labeled "+id+" "+label, invalidate,
		func(ctx context.Context) (reardiff.Record, error) {
			return m.client.UpdateLabel(ctx, id, label)
		})
}
