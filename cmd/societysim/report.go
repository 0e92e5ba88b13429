package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/cory-johannsen/society/internal/sim/action"
	"github.com/cory-johannsen/society/internal/sim/agent"
	"github.com/cory-johannsen/society/internal/sim/clock"
	"github.com/cory-johannsen/society/internal/sim/location"
)

// renderMode selects the table output format.
type renderMode int

const (
	modeASCII renderMode = iota
	modeMarkdown
)

func modeFor(markdown bool) renderMode {
	if markdown {
		return modeMarkdown
	}
	return modeASCII
}

func newWriter(m renderMode) table.Writer {
	w := table.NewWriter()
	if m == modeASCII {
		w.SetStyle(table.StyleLight)
	}
	return w
}

func render(w table.Writer, m renderMode) string {
	if m == modeMarkdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

// tickTable lists the resolved actions of one tick. Ongoing activities are
// counted in the footer rather than listed.
func tickTable(label string, actions []action.Action, m renderMode) string {
	w := newWriter(m)
	w.SetTitle(label)
	w.AppendHeader(table.Row{"Agent", "Kind", "Duration", "Event"})
	busy := 0
	for _, a := range actions {
		if a.Ongoing {
			busy++
			continue
		}
		w.AppendRow(table.Row{a.Actor.NameWithID(), a.Kind, clock.Format(a.Duration), a.Sentence(nil)})
	}
	w.AppendFooter(table.Row{"", "", "busy", busy})
	w.SetColumnConfigs([]table.ColumnConfig{{Number: 4, WidthMax: 72}})
	return render(w, m)
}

// agentTable summarises every agent's state.
func agentTable(agents []*agent.Agent, loc *location.Location, m renderMode) string {
	w := newWriter(m)
	w.SetTitle("Agents")
	w.AppendHeader(table.Row{"ID", "Name", "Job", "Area", "Status", "Sleepiness", "Hunger", "Log"})
	for _, a := range agents {
		area := a.Area
		if ar, ok := loc.Get(a.Area); ok {
			area = ar.NameWithID()
		}
		w.AppendRow(table.Row{a.ID, a.Name, a.Job, area, a.Status, clock.Format(a.Sleepiness), clock.Format(a.Hunger), a.History.Len()})
	}
	return render(w, m)
}

// travelTable renders the quantized travel matrix as durations.
func travelTable(loc *location.Location, m renderMode) (string, error) {
	areas := loc.Areas()
	w := newWriter(m)
	w.SetTitle("Travel times")
	header := table.Row{"From \\ To"}
	for _, a := range areas {
		header = append(header, a.ID)
	}
	w.AppendHeader(header)
	for _, from := range areas {
		row := table.Row{from.NameWithID()}
		for _, to := range areas {
			ticks, err := loc.TravelTime(from.ID, to.ID)
			if err != nil {
				return "", fmt.Errorf("travel %s -> %s: %w", from.ID, to.ID, err)
			}
			row = append(row, clock.Format(ticks))
		}
		w.AppendRow(row)
	}
	return render(w, m), nil
}
