package attach

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/du0ngtrunghieu/ttd-attach/pkg/types"
)

const dueDateLayout = "2006-01-02"

// ResolverOptions holds the fixed values the resolver writes to tickets.
type ResolverOptions struct {
	From             string
	To               []string
	TransitionID     string
	DueDateField     string
	NoResultsComment string
	Extensions       []string
}

// Resolver runs the side effects for one child ticket.
type Resolver struct {
	tracker Tracker
	mailer  Mailer
	opts    ResolverOptions
	logger  *slog.Logger
}

func NewResolver(tracker Tracker, mailer Mailer, opts ResolverOptions, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".txt"}
	}
	return &Resolver{
		tracker: tracker,
		mailer:  mailer,
		opts:    opts,
		logger:  logger,
	}
}

// Resolve mails the record, attaches the sent mail and advances the ticket.
// With no record it only posts the no-results comment. runDate is written
// to the due-date field.
func (r *Resolver) Resolve(ctx context.Context, key, subject string, record *types.StatsRecord, runDate time.Time) types.Outcome {
	log := r.logger.With("ticket", key)

	if record == nil {
		err := r.tracker.AddComment(ctx, key, r.opts.NoResultsComment)
		if err != nil {
			log.Warn("could not post no-results comment", "error", err)
			return types.Outcome{Key: key, Status: types.StatusNoData, Err: fmt.Errorf("add comment: %w", err)}
		}
		log.Warn("no-results alert added as a comment")
		return types.Outcome{Key: key, Status: types.StatusNoData}
	}

	payload, err := r.mailer.Send(ctx, types.Message{
		Subject: subject,
		From:    r.opts.From,
		To:      r.opts.To,
		Body:    record.Raw,
	})
	if err != nil {
		log.Error("email failed", "error", err)
		return types.Outcome{Key: key, Status: types.StatusMailFailed, Err: fmt.Errorf("send mail: %w", err)}
	}
	log.Info("results email sent", "subject", subject)

	for _, ext := range r.opts.Extensions {
		filename := subject + ext
		if err := r.tracker.AddAttachment(ctx, key, payload, filename); err != nil {
			log.Warn("problem adding the email attachment", "file", filename, "error", err)
			return types.Outcome{Key: key, Status: types.StatusAttachmentFailed, Err: fmt.Errorf("attach %s: %w", filename, err)}
		}
	}
	log.Info("email copy attached")

	due := runDate.Format(dueDateLayout)
	if err := r.tracker.UpdateField(ctx, key, r.opts.DueDateField, due); err != nil {
		log.Error("due date update failed", "error", err)
		return types.Outcome{Key: key, Status: types.StatusFieldUpdateFailed, Err: fmt.Errorf("update %s: %w", r.opts.DueDateField, err)}
	}
	log.Info("due date set", "due", due)

	if err := r.tracker.Transition(ctx, key, r.opts.TransitionID); err != nil {
		log.Error("transition failed", "transition", r.opts.TransitionID, "error", err)
		return types.Outcome{Key: key, Status: types.StatusFieldUpdateFailed, Err: fmt.Errorf("transition %s: %w", r.opts.TransitionID, err)}
	}
	log.Info("ticket transitioned", "transition", r.opts.TransitionID)

	return types.Outcome{Key: key, Status: types.StatusCompleted}
}
