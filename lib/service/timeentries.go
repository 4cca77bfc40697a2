package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/opsdeskhq/opsdesk/billing"
	"github.com/opsdeskhq/opsdesk/db/models"
	"github.com/opsdeskhq/opsdesk/lib/tracker"
	"github.com/uptrace/bun"
)

type StartTimerParams struct {
	ProjectID   string `json:"project_id" validate:"required"`
	Description string `json:"description"`
}

type TimeEntryFilter struct {
	View           billing.View
	ProjectIDs     []string
	UninvoicedOnly bool
}

// RunningEntry returns the current unfinished entry, or nil when the timer
// is idle.
func (svc *OpsdeskService) RunningEntry(ctx context.Context) (*models.TimeEntry, error) {
	var entry models.TimeEntry

	err := svc.DB.NewSelect().Model(&entry).
		Where("tracking_finished = false").
		OrderExpr("start_time ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// StartTimer begins tracking a new entry. The "exactly one active timer"
// invariant is an advisory check-then-act: a concurrent session could slip
// past it, and nothing reconciles that beyond manual cleanup.
func (svc *OpsdeskService) StartTimer(ctx context.Context, params StartTimerParams, now time.Time) (*models.TimeEntry, error) {
	running, err := svc.RunningEntry(ctx)
	if err != nil {
		return nil, err
	}
	if running != nil {
		return nil, ErrTimerAlreadyRunning
	}

	project, err := svc.FindProject(ctx, params.ProjectID)
	if err != nil {
		return nil, err
	}
	client, err := svc.FindClient(ctx, project.ClientID)
	if err != nil {
		return nil, err
	}

	entry := &models.TimeEntry{
		StartTime:        now,
		ClientID:         project.ClientID,
		Description:      params.Description,
		Project:          models.SnapshotProject(project, client),
		Billable:         true,
		TrackingFinished: false,
	}
	if _, err := svc.DB.NewInsert().Model(entry).Exec(ctx); err != nil {
		return nil, err
	}

	if err := svc.TimerStore.SetRunning(tracker.State{
		EntryID:     entry.ID,
		StartTime:   entry.StartTime,
		ClientID:    entry.ClientID,
		ProjectID:   params.ProjectID,
		Description: params.Description,
	}); err != nil {
		svc.Logger.Errorf("Failed to persist timer state: %v", err)
	}
	return entry, nil
}

// StopTimer finishes the running entry: sets the end time, persists the
// elapsed whole seconds and flips tracking_finished.
func (svc *OpsdeskService) StopTimer(ctx context.Context, now time.Time) (*models.TimeEntry, error) {
	entry, err := svc.RunningEntry(ctx)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNoRunningTimer
	}

	lapsed := billing.Elapsed(entry.StartTime, now)
	entry.EndTime = bun.NullTime{Time: now}
	entry.TimeLapsed = &lapsed
	entry.TrackingFinished = true
	if _, err := svc.DB.NewUpdate().Model(entry).WherePK().Exec(ctx); err != nil {
		return nil, err
	}

	if err := svc.TimerStore.Clear(); err != nil {
		svc.Logger.Errorf("Failed to clear timer state: %v", err)
	}
	return entry, nil
}

// ReconcileTimer aligns the local timer state file with the database on
// startup. The database is authoritative.
func (svc *OpsdeskService) ReconcileTimer(ctx context.Context) (tracker.State, error) {
	entry, err := svc.RunningEntry(ctx)
	if err != nil {
		return tracker.State{}, err
	}
	if entry == nil {
		return svc.TimerStore.Reconcile(nil)
	}
	return svc.TimerStore.Reconcile(&tracker.State{
		EntryID:     entry.ID,
		StartTime:   entry.StartTime,
		ClientID:    entry.ClientID,
		ProjectID:   entry.Project.ProjectID,
		Description: entry.Description,
	})
}

func (svc *OpsdeskService) FindTimeEntry(ctx context.Context, entryId int64) (*models.TimeEntry, error) {
	var entry models.TimeEntry

	err := svc.DB.NewSelect().Model(&entry).Where("id = ?", entryId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (svc *OpsdeskService) TimeEntriesByIds(ctx context.Context, entryIds []int64) ([]models.TimeEntry, error) {
	entries := []models.TimeEntry{}

	err := svc.DB.NewSelect().Model(&entries).
		Where("id IN (?)", bun.In(entryIds)).
		OrderExpr("start_time ASC").
		Scan(ctx)
	return entries, err
}

// TimeEntries lists finished entries, optionally windowed to the week or
// year containing now, restricted to a set of projects, or restricted to
// entries not yet on any invoice.
func (svc *OpsdeskService) TimeEntries(ctx context.Context, filter TimeEntryFilter, now time.Time) ([]models.TimeEntry, error) {
	entries := []models.TimeEntry{}

	q := svc.DB.NewSelect().Model(&entries).
		Where("tracking_finished = true").
		OrderExpr("start_time DESC")

	if window, ok := billing.WindowFor(filter.View, now); ok {
		q = q.Where("start_time >= ?", window.Start).Where("start_time <= ?", window.End)
	}
	if len(filter.ProjectIDs) > 0 {
		q = q.Where("project->>'project_id' IN (?)", bun.In(filter.ProjectIDs))
	}
	if filter.UninvoicedOnly {
		q = q.Where("invoice_id IS NULL")
	}

	err := q.Scan(ctx)
	return entries, err
}

func (svc *OpsdeskService) UpdateTimeEntry(ctx context.Context, entry *models.TimeEntry) error {
	// re-derive the duration when the span was edited
	if entry.TrackingFinished && !entry.EndTime.IsZero() {
		lapsed := billing.Elapsed(entry.StartTime, entry.EndTime.Time)
		entry.TimeLapsed = &lapsed
	}
	_, err := svc.DB.NewUpdate().Model(entry).WherePK().Exec(ctx)
	return err
}

func (svc *OpsdeskService) DeleteTimeEntry(ctx context.Context, entryId int64) error {
	_, err := svc.DB.NewDelete().Model((*models.TimeEntry)(nil)).Where("id = ?", entryId).Exec(ctx)
	return err
}
