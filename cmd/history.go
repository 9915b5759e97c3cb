package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jamx/internal/formatter"
	"github.com/desertthunder/jamx/internal/models"
	"github.com/desertthunder/jamx/internal/repositories"
	"github.com/desertthunder/jamx/internal/shared"
)

func (r *Runner) eventRepository() (*repositories.EventRepository, error) {
	db, err := r.database()
	if err != nil {
		return nil, fmt.Errorf("history unavailable: %w", err)
	}
	return repositories.NewEventRepository(db), nil
}

// History prints journaled actions, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	criteria := map[string]any{"limit": cmd.Int("limit")}

	if action := strings.ToLower(cmd.String("action")); action != "" {
		switch models.Action(action) {
		case models.ActionRecord, models.ActionGenerate, models.ActionStop, models.ActionPlay:
			criteria["action"] = models.Action(action)
		default:
			return fmt.Errorf("%w: unknown action %q", shared.ErrInvalidFlag, action)
		}
	}

	if outcome := strings.ToLower(cmd.String("outcome")); outcome != "" {
		switch models.Outcome(outcome) {
		case models.OutcomeOK, models.OutcomeRejected, models.OutcomeFailed:
			criteria["outcome"] = models.Outcome(outcome)
		default:
			return fmt.Errorf("%w: unknown outcome %q", shared.ErrInvalidFlag, outcome)
		}
	}

	repo, err := r.eventRepository()
	if err != nil {
		return err
	}

	events, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	r.logger.Debug("listed events", "count", len(events), "format", format)

	if path := cmd.String("output"); path != "" {
		written, err := formatter.WriteExport(events, format, path)
		if err != nil {
			return err
		}
		return r.writePlain("Exported %d events to %s\n", len(events), written)
	}

	return formatter.ExportEvents(r.output, events, format)
}

// HistoryDelete soft-deletes a single journal entry.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}

	repo, err := r.eventRepository()
	if err != nil {
		return err
	}

	if err := repo.Delete(id); err != nil {
		return err
	}

	r.logger.Info("event deleted", "id", id)
	return r.writePlain("Deleted event %s\n", id)
}
