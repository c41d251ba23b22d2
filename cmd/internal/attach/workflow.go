package attach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/du0ngtrunghieu/ttd-attach/pkg/helper"
	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

// Workflow walks parent tickets, their children, and drives each child
// through extraction and resolution.
type Workflow struct {
	tracker     Tracker
	resolver    *Resolver
	results     *Results
	childStatus []string
	logger      *slog.Logger
}

func NewWorkflow(tracker Tracker, resolver *Resolver, results *Results, childStatus []string, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		tracker:     tracker,
		resolver:    resolver,
		results:     results,
		childStatus: childStatus,
		logger:      logger,
	}
}

// Run processes every child of every parent matched by parentQuery, then
// persists the collected results. A failed parent search ends the run at
// once. Failed child searches skip their parent, and after the results are
// persisted they are returned joined. Child failures only become outcomes.
func (w *Workflow) Run(ctx context.Context, parentQuery types.Query, runDate time.Time) (types.Summary, error) {
	summary := types.Summary{Outcomes: map[types.Status]int{}}

	parents, err := w.tracker.SearchTickets(ctx, parentQuery)
	if err != nil {
		w.logger.Error("parent ticket search failed", "error", err)
		return summary, fmt.Errorf("search parent tickets: %w", err)
	}

	summary.Parents = len(parents)
	w.logger.Info("parent tickets found", "count", len(parents), "keys", keys(parents))

	if len(parents) == 0 {
		return summary, nil
	}

	var searchErrs []error
	for _, parent := range parents {
		if err := w.processParent(ctx, parent, runDate, &summary); err != nil {
			summary.FailedParents++
			searchErrs = append(searchErrs, err)
		}
	}

	w.results.Persist()
	summary.Results = w.results.Len()

	return summary, errors.Join(searchErrs...)
}

func (w *Workflow) processParent(ctx context.Context, parent types.TicketRef, runDate time.Time, summary *types.Summary) error {
	log := w.logger.With("parent", parent.Key)
	log.Info("processing parent ticket")

	children, err := w.tracker.SearchTickets(ctx, types.Query{ParentKey: parent.Key, Statuses: w.childStatus})
	if err != nil {
		log.Error("child ticket search failed", "error", err)
		return fmt.Errorf("search children of %s: %w", parent.Key, err)
	}

	if len(children) == 0 {
		log.Warn("there are no child tickets")
		return nil
	}

	log.Info("child tickets found", "keys", keys(children))

	for _, child := range children {
		outcome := w.processChild(ctx, child, runDate)
		summary.Add(outcome)

		if outcome.Err != nil {
			log.Warn("child ticket finished with error", "ticket", child.Key, "status", outcome.Status, "error", outcome.Err)
			continue
		}
		log.Info("child ticket finished", "ticket", child.Key, "status", outcome.Status)
	}

	log.Info("end of parent ticket")
	return nil
}

func (w *Workflow) processChild(ctx context.Context, child types.TicketRef, runDate time.Time) (outcome types.Outcome) {
	defer func() {
		if p := recover(); p != nil {
			outcome = types.Outcome{Key: child.Key, Status: types.StatusFailed, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	log := w.logger.With("ticket", child.Key)

	detail, err := w.tracker.GetTicket(ctx, child.Key)
	if err != nil {
		return types.Outcome{Key: child.Key, Status: types.StatusFailed, Err: fmt.Errorf("get ticket: %w", err)}
	}

	subject := fmt.Sprintf("%s %s", detail.Key, helper.AlnumOnly(detail.ParentSummary))

	record, err := ExtractStats(detail.Comments)
	if err != nil {
		log.Warn("stats comment is malformed", "error", err)
		return types.Outcome{Key: child.Key, Status: types.StatusMalformed, Err: err}
	}

	if record == nil {
		log.Warn("the api returned counts have not yet posted to the comments section")
	} else {
		log.Info("api returned counts found", "stats", strings.Join(strings.Split(record.Raw, "\n"), " "))
	}

	// Recorded before the side effects so a panic below still keeps the metrics.
	if record != nil {
		w.results.Record(child.Key, record.Metrics)
	}

	return w.resolver.Resolve(ctx, child.Key, subject, record, runDate)
}

func keys(refs []types.TicketRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Key)
	}
	return out
}
