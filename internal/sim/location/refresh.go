package location

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/society/internal/oracle"
	"github.com/cory-johannsen/society/internal/sim/action"
	"github.com/cory-johannsen/society/internal/sim/agent"
)

const summaryInstruction = `You narrate a small-town social simulation.
Given the global narrative, an area's previous situation and the events that happened there during the last ten minutes,
write a one or two line update describing what is going on in the area now. If nothing happened, describe an ordinary moment.
Reply with the update only.`

// SummaryRequest builds the narrative refresh request for one area.
func SummaryRequest(a *Area, narrative string) oracle.Request {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Global narrative\n%s\n", orNone(narrative))
	fmt.Fprintf(&sb, "## Area\n%s\n%s\n", a.NameWithID(), a.Description)
	fmt.Fprintf(&sb, "## Previous situation\n%s\n", orNone(a.Summary))
	sb.WriteString("## Events\n")
	if len(a.Events) == 0 {
		sb.WriteString("Nothing notable happened.\n")
	}
	for _, e := range a.Events {
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	return oracle.Request{System: summaryInstruction, Messages: oracle.Text(sb.String())}
}

// Refresh asks o for a new summary of every area concurrently and waits for
// all of them. An area whose refresh fails keeps its previous summary.
//
// Precondition: o and logger must be non-nil.
// Postcondition: Every request has settled; returns the number of failed refreshes.
func (l *Location) Refresh(ctx context.Context, o oracle.Oracle, narrative string, logger *zap.Logger) int {
	pending := make([]<-chan oracle.Result, len(l.order))
	for i, a := range l.order {
		pending[i] = oracle.Async(ctx, o, SummaryRequest(a, narrative))
	}
	failed := 0
	for i, ch := range pending {
		res := <-ch
		area := l.order[i]
		if res.Err != nil {
			failed++
			logger.Warn("area summary refresh failed", zap.String("area", area.ID), zap.Error(res.Err))
			continue
		}
		if text := strings.TrimSpace(res.Response.Text); text != "" {
			area.Summary = text
		}
	}
	return failed
}

// Update performs the per-tick aggregation: occupant recount, event
// collection and narrative refresh.
func (l *Location) Update(ctx context.Context, agents []*agent.Agent, actions []action.Action, o oracle.Oracle, narrative string, logger *zap.Logger) int {
	l.Recount(agents)
	l.Collect(actions)
	return l.Refresh(ctx, o, narrative, logger)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
