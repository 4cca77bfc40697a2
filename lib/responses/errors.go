package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "not found",
	HttpStatusCode: 404,
}

var TimerAlreadyRunningError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "a timer is already running. Stop it before starting a new one",
	HttpStatusCode: 409,
}

var EntryNotBillableError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "one or more selected entries are locked by a published invoice",
	HttpStatusCode: 400,
}

var EntryNotFinishedError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "one or more selected entries are still being tracked",
	HttpStatusCode: 400,
}

var MixedClientSelectionError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "selected entries span more than one client",
	HttpStatusCode: 400,
}

var InvoicePublishedError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invoice is published and can no longer be changed",
	HttpStatusCode: 409,
}

var InvoiceDraftError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invoice must be published first",
	HttpStatusCode: 409,
}

var PaymentMethodRequiredError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "payment method is required",
	HttpStatusCode: 400,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}

// auth failures are user error, not something to page about
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	m, ok := he.Message.(echo.Map)
	if !ok {
		return true
	}
	code, ok := m["code"].(int)
	if !ok {
		return true
	}
	return code != BadAuthError.Code
}
