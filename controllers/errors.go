package controllers

import (
	"database/sql"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/opsdeskhq/opsdesk/lib/responses"
	"github.com/opsdeskhq/opsdesk/lib/service"
)

// writeServiceError translates service layer errors into the canned JSON
// error responses.
func writeServiceError(c echo.Context, err error) error {
	var resp responses.ErrorResponse
	switch {
	case errors.Is(err, sql.ErrNoRows):
		resp = responses.NotFoundError
	case errors.Is(err, service.ErrTimerAlreadyRunning):
		resp = responses.TimerAlreadyRunningError
	case errors.Is(err, service.ErrNoRunningTimer),
		errors.Is(err, service.ErrEntryNotFound):
		resp = responses.NotFoundError
	case errors.Is(err, service.ErrEmptySelection):
		resp = responses.BadArgumentsError
	case errors.Is(err, service.ErrEntryNotFinished):
		resp = responses.EntryNotFinishedError
	case errors.Is(err, service.ErrEntryNotBillable),
		errors.Is(err, service.ErrEntryAlreadyInvoiced):
		resp = responses.EntryNotBillableError
	case errors.Is(err, service.ErrMixedClientSelection):
		resp = responses.MixedClientSelectionError
	case errors.Is(err, service.ErrInvoicePublished):
		resp = responses.InvoicePublishedError
	case errors.Is(err, service.ErrInvoiceDraft):
		resp = responses.InvoiceDraftError
	case errors.Is(err, service.ErrPaymentMethodRequired):
		resp = responses.PaymentMethodRequiredError
	default:
		c.Logger().Errorf("Unhandled service error: %v", err)
		resp = responses.GeneralServerError
	}
	return c.JSON(resp.HttpStatusCode, resp)
}
