package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/opsdeskhq/opsdesk/lib/responses"
	"github.com/opsdeskhq/opsdesk/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callWriteServiceError(t *testing.T, err error) (int, responses.ErrorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, writeServiceError(c, err))

	var body responses.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestWriteServiceErrorNotFound(t *testing.T) {
	code, body := callWriteServiceError(t, sql.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, responses.NotFoundError.Message, body.Message)
}

func TestWriteServiceErrorMissingSelection(t *testing.T) {
	// selectableEntries wraps the sentinel with the N-of-M detail
	wrapped := fmt.Errorf("%w: 2 of 3 selected", service.ErrEntryNotFound)

	code, _ := callWriteServiceError(t, wrapped)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWriteServiceErrorTimerConflict(t *testing.T) {
	code, _ := callWriteServiceError(t, service.ErrTimerAlreadyRunning)
	assert.Equal(t, http.StatusConflict, code)
}

func TestWriteServiceErrorPublishedInvoice(t *testing.T) {
	code, body := callWriteServiceError(t, service.ErrInvoicePublished)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, responses.InvoicePublishedError.Message, body.Message)
}

func TestWriteServiceErrorMixedClients(t *testing.T) {
	code, _ := callWriteServiceError(t, service.ErrMixedClientSelection)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestWriteServiceErrorUnknownFallsBack(t *testing.T) {
	code, body := callWriteServiceError(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.True(t, body.Error)
	assert.Equal(t, responses.GeneralServerError.Code, body.Code)
}
