package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/opsdeskhq/opsdesk/billing"
	"github.com/opsdeskhq/opsdesk/db/models"
	"github.com/opsdeskhq/opsdesk/lib/responses"
	"github.com/opsdeskhq/opsdesk/lib/service"
	"github.com/opsdeskhq/opsdesk/pdf"
	qrcode "github.com/skip2/go-qrcode"
)

// InvoiceController : Invoice controller struct
type InvoiceController struct {
	svc *service.OpsdeskService
}

func NewInvoiceController(svc *service.OpsdeskService) *InvoiceController {
	return &InvoiceController{svc: svc}
}

type CreateInvoiceRequestBody struct {
	TimeEntryIDs []int64 `json:"time_entry_ids" validate:"required,min=1"`
}

type AddEntriesRequestBody struct {
	TimeEntryIDs []int64 `json:"time_entry_ids" validate:"required,min=1"`
}

type MarkPaidRequestBody struct {
	PaymentMethod string     `json:"payment_method" validate:"required"`
	ReceivedAt    *time.Time `json:"received_at"`
	Fees          *float64   `json:"fees"`
}

type InvoiceResponseBody struct {
	models.Invoice
	TimeEntriesSumString string   `json:"time_entries_sum_string"`
	TimeAmount           *float64 `json:"time_amount"`
	GrandTotal           float64  `json:"grand_total"`
}

func invoiceResponse(invoice *models.Invoice) *InvoiceResponseBody {
	response := &InvoiceResponseBody{
		Invoice:              *invoice,
		TimeEntriesSumString: billing.FormatDuration(invoice.TimeEntriesSum),
		GrandTotal:           invoice.Totals().GrandTotal(),
	}
	if amount, ok := billing.TimeAmount(invoice.TimeEntriesSum, invoice.ProjectHourly); ok {
		response.TimeAmount = &amount
	}
	return response
}

func (controller *InvoiceController) GetInvoices(c echo.Context) error {
	invoices, err := controller.svc.Invoices(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]InvoiceResponseBody, len(invoices))
	for i := range invoices {
		response[i] = *invoiceResponse(&invoices[i])
	}
	return c.JSON(http.StatusOK, response)
}

func (controller *InvoiceController) GetInvoice(c echo.Context) error {
	invoice, err := controller.svc.FindInvoice(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, invoiceResponse(invoice))
}

// CreateInvoice composes a new draft invoice from a batch of finished,
// billable time entries belonging to one client.
func (controller *InvoiceController) CreateInvoice(c echo.Context) error {
	var body CreateInvoiceRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create invoice request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	invoice, err := controller.svc.CreateInvoiceForEntries(c.Request().Context(), body.TimeEntryIDs, time.Now())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, invoiceResponse(invoice))
}

// AddEntries merges additional time entries into an existing draft invoice.
func (controller *InvoiceController) AddEntries(c echo.Context) error {
	var body AddEntriesRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load add entries request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	invoice, err := controller.svc.AddEntriesToInvoice(c.Request().Context(), c.Param("invoice_id"), body.TimeEntryIDs, time.Now())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, invoiceResponse(invoice))
}

// UpdateInvoice edits the billing terms of a draft invoice.
func (controller *InvoiceController) UpdateInvoice(c echo.Context) error {
	var body service.UpdateInvoiceParams

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update invoice request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	invoice, err := controller.svc.UpdateInvoice(c.Request().Context(), c.Param("invoice_id"), body)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, invoiceResponse(invoice))
}

// PublishInvoice finalizes a draft and locks its time entries.
func (controller *InvoiceController) PublishInvoice(c echo.Context) error {
	invoice, err := controller.svc.PublishInvoice(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, invoiceResponse(invoice))
}

// MarkPaid records payment on a published invoice.
func (controller *InvoiceController) MarkPaid(c echo.Context) error {
	var body MarkPaidRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load mark paid request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	receivedAt := time.Now()
	if body.ReceivedAt != nil {
		receivedAt = *body.ReceivedAt
	}

	invoice, err := controller.svc.MarkInvoicePaid(c.Request().Context(), c.Param("invoice_id"), body.PaymentMethod, receivedAt, body.Fees)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, invoiceResponse(invoice))
}

// GetInvoicePDF renders the invoice as a PDF document.
func (controller *InvoiceController) GetInvoicePDF(c echo.Context) error {
	invoice, err := controller.svc.FindInvoice(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return writeServiceError(c, err)
	}

	business := controller.svc.Config.Business
	generator := pdf.NewInvoiceGenerator(pdf.BusinessInfo{
		Name:        business.Name,
		ContactName: business.ContactName,
		Email:       business.Email,
		Phone:       business.Phone,
		Address:     business.Address,
	})
	document, err := generator.Generate(invoice)
	if err != nil {
		c.Logger().Errorf("Failed to render invoice %s: %v", invoice.ID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.pdf", invoice.ID))
	return c.Blob(http.StatusOK, "application/pdf", document)
}

// GetPaymentQR encodes the operator's payment reference together with the
// invoice id and amount as a PNG QR code.
func (controller *InvoiceController) GetPaymentQR(c echo.Context) error {
	reference := controller.svc.Config.Business.PaymentReference
	if reference == "" {
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	invoice, err := controller.svc.FindInvoice(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return writeServiceError(c, err)
	}

	payload := fmt.Sprintf("%s?invoice=%s&amount=%.2f", reference, invoice.ID, invoice.Totals().GrandTotal())
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		c.Logger().Errorf("Failed to encode payment QR for %s: %v", invoice.ID, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
