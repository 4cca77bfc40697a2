package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/opsdeskhq/opsdesk/billing"
	"github.com/opsdeskhq/opsdesk/db/models"
	"github.com/opsdeskhq/opsdesk/lib/responses"
	"github.com/opsdeskhq/opsdesk/lib/service"
	"github.com/uptrace/bun"
)

// TimeEntryController : Time entry and timer controller struct
type TimeEntryController struct {
	svc *service.OpsdeskService
}

func NewTimeEntryController(svc *service.OpsdeskService) *TimeEntryController {
	return &TimeEntryController{svc: svc}
}

type TimerStatusResponseBody struct {
	Running     bool              `json:"running"`
	Entry       *models.TimeEntry `json:"entry,omitempty"`
	ElapsedSecs int64             `json:"elapsed_seconds,omitempty"`
	Elapsed     string            `json:"elapsed,omitempty"`
}

type TimeEntryResponseBody struct {
	models.TimeEntry
	TimeLapsedString string `json:"time_lapsed_string"`
}

func timeEntryResponse(entry *models.TimeEntry) *TimeEntryResponseBody {
	return &TimeEntryResponseBody{
		TimeEntry:        *entry,
		TimeLapsedString: billing.FormatDuration(entry.Seconds()),
	}
}

// TimerStatus reports the running timer, if any, with the live elapsed time.
func (controller *TimeEntryController) TimerStatus(c echo.Context) error {
	entry, err := controller.svc.RunningEntry(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	if entry == nil {
		return c.JSON(http.StatusOK, &TimerStatusResponseBody{Running: false})
	}
	elapsed := billing.LiveElapsed(entry.StartTime, time.Now())
	return c.JSON(http.StatusOK, &TimerStatusResponseBody{
		Running:     true,
		Entry:       entry,
		ElapsedSecs: elapsed,
		Elapsed:     billing.FormatDuration(elapsed),
	})
}

// StartTimer begins tracking time against a project.
func (controller *TimeEntryController) StartTimer(c echo.Context) error {
	var body service.StartTimerParams

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load start timer request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	entry, err := controller.svc.StartTimer(c.Request().Context(), body, time.Now())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

// StopTimer finishes the running entry and returns it with the recorded
// duration.
func (controller *TimeEntryController) StopTimer(c echo.Context) error {
	entry, err := controller.svc.StopTimer(c.Request().Context(), time.Now())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, timeEntryResponse(entry))
}

// GetTimeEntries lists finished entries. Query parameters: view (week, year
// or total), project_ids (comma separated) and uninvoiced (true to exclude
// invoiced entries).
func (controller *TimeEntryController) GetTimeEntries(c echo.Context) error {
	filter := service.TimeEntryFilter{
		View:           billing.ViewTotal,
		UninvoicedOnly: c.QueryParam("uninvoiced") == "true",
	}
	switch view := c.QueryParam("view"); view {
	case "", string(billing.ViewTotal):
	case string(billing.ViewWeek), string(billing.ViewYear):
		filter.View = billing.View(view)
	default:
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if ids := c.QueryParam("project_ids"); ids != "" {
		filter.ProjectIDs = strings.Split(ids, ",")
	}

	entries, err := controller.svc.TimeEntries(c.Request().Context(), filter, time.Now())
	if err != nil {
		return writeServiceError(c, err)
	}

	response := make([]TimeEntryResponseBody, len(entries))
	for i := range entries {
		response[i] = *timeEntryResponse(&entries[i])
	}
	return c.JSON(http.StatusOK, response)
}

func (controller *TimeEntryController) GetTimeEntry(c echo.Context) error {
	entryId, err := strconv.ParseInt(c.Param("entry_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	entry, err := controller.svc.FindTimeEntry(c.Request().Context(), entryId)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, timeEntryResponse(entry))
}

type UpdateTimeEntryRequestBody struct {
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Description *string    `json:"description"`
	Billable    *bool      `json:"billable"`
}

// UpdateTimeEntry edits an entry's span, description or billable flag. The
// duration is re-derived from the edited span. Bookkeeping fields (invoice
// id, client id, tracking state) are not editable through this endpoint.
func (controller *TimeEntryController) UpdateTimeEntry(c echo.Context) error {
	ctx := c.Request().Context()

	entryId, err := strconv.ParseInt(c.Param("entry_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	entry, err := controller.svc.FindTimeEntry(ctx, entryId)
	if err != nil {
		return writeServiceError(c, err)
	}
	if entry.InvoiceID != "" {
		return c.JSON(responses.EntryNotBillableError.HttpStatusCode, responses.EntryNotBillableError)
	}

	var body UpdateTimeEntryRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update time entry request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if body.StartTime != nil {
		entry.StartTime = *body.StartTime
	}
	if body.EndTime != nil {
		entry.EndTime = bun.NullTime{Time: *body.EndTime}
	}
	if body.Description != nil {
		entry.Description = *body.Description
	}
	if body.Billable != nil {
		entry.Billable = *body.Billable
	}

	if err := controller.svc.UpdateTimeEntry(ctx, entry); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, timeEntryResponse(entry))
}

func (controller *TimeEntryController) DeleteTimeEntry(c echo.Context) error {
	entryId, err := strconv.ParseInt(c.Param("entry_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	entry, err := controller.svc.FindTimeEntry(c.Request().Context(), entryId)
	if err != nil {
		return writeServiceError(c, err)
	}
	if entry.InvoiceID != "" {
		return c.JSON(responses.EntryNotBillableError.HttpStatusCode, responses.EntryNotBillableError)
	}
	if err := controller.svc.DeleteTimeEntry(c.Request().Context(), entry.ID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
