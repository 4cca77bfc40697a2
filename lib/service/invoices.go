package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/opsdeskhq/opsdesk/billing"
	"github.com/opsdeskhq/opsdesk/db/models"
	"github.com/opsdeskhq/opsdesk/rabbitmq"
	"github.com/uptrace/bun"
)

type UpdateInvoiceParams struct {
	LineItems             []billing.LineItem `json:"line_items"`
	ProjectCosts          float64            `json:"project_costs"`
	Adjustments           float64            `json:"adjustments"`
	AdjustmentsDescriptor string             `json:"adjustments_descriptor"`
	Fees                  float64            `json:"fees"`
	Notes                 string             `json:"notes"`
	PrivateNotes          string             `json:"private_notes"`
}

func (svc *OpsdeskService) FindInvoice(ctx context.Context, invoiceId string) (*models.Invoice, error) {
	var invoice models.Invoice

	err := svc.DB.NewSelect().Model(&invoice).Where("id = ?", invoiceId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (svc *OpsdeskService) Invoices(ctx context.Context) ([]models.Invoice, error) {
	invoices := []models.Invoice{}

	err := svc.DB.NewSelect().Model(&invoices).OrderExpr("created_at DESC").Scan(ctx)
	return invoices, err
}

// selectableEntries loads and validates a batch of entries for invoicing:
// every entry must be finished, still billable and not yet on an invoice,
// and the batch must belong to a single client.
func (svc *OpsdeskService) selectableEntries(ctx context.Context, entryIds []int64) ([]models.TimeEntry, error) {
	if len(entryIds) == 0 {
		return nil, ErrEmptySelection
	}
	entries, err := svc.TimeEntriesByIds(ctx, entryIds)
	if err != nil {
		return nil, err
	}
	if len(entries) != len(entryIds) {
		return nil, fmt.Errorf("%w: %d of %d selected", ErrEntryNotFound, len(entryIds)-len(entries), len(entryIds))
	}
	clientId := entries[0].ClientID
	for i := range entries {
		if !entries[i].TrackingFinished {
			return nil, ErrEntryNotFinished
		}
		if !entries[i].Billable {
			return nil, ErrEntryNotBillable
		}
		if entries[i].InvoiceID != "" {
			return nil, ErrEntryAlreadyInvoiced
		}
		if entries[i].ClientID != clientId {
			return nil, ErrMixedClientSelection
		}
	}
	return entries, nil
}

// nextInvoiceId derives the human-readable {client_id}-{MMDDYYYY} identifier.
// A second invoice for the same client on the same day gets a numeric suffix
// instead of colliding.
func (svc *OpsdeskService) nextInvoiceId(ctx context.Context, clientId string, invoiceDate time.Time) (string, error) {
	base := billing.InvoiceNumber(clientId, invoiceDate)
	candidate := base
	for n := 2; ; n++ {
		exists, err := svc.DB.NewSelect().Model((*models.Invoice)(nil)).Where("id = ?", candidate).Exists(ctx)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

// CreateInvoiceForEntries composes a new draft invoice from a batch of
// selected time entries. The first entry's project snapshot supplies the
// denormalized client/project display fields; the billing period spans the
// selected entries' start times.
func (svc *OpsdeskService) CreateInvoiceForEntries(ctx context.Context, entryIds []int64, now time.Time) (*models.Invoice, error) {
	entries, err := svc.selectableEntries(ctx, entryIds)
	if err != nil {
		return nil, err
	}

	snapshot := entries[0].Project
	clientId := entries[0].ClientID

	// contact details come from the live client record, not the snapshot
	var clientEmail, clientPhone string
	if client, err := svc.FindClient(ctx, clientId); err == nil {
		clientEmail = client.ClientEmail
		clientPhone = client.ClientPhone
	}

	starts := make([]time.Time, len(entries))
	for i := range entries {
		starts[i] = entries[i].StartTime
	}
	period, _ := billing.PeriodOf(starts)

	invoiceDate := billing.DayFloor(now)
	invoiceId, err := svc.nextInvoiceId(ctx, clientId, invoiceDate)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		ID:             invoiceId,
		CreatedAt:      now,
		StartDate:      period.Start,
		EndDate:        period.End,
		InvoiceDate:    invoiceDate,
		InvoiceDue:     billing.DueDate(invoiceDate),
		ClientID:       clientId,
		ClientFirst:    snapshot.ClientFirst,
		ClientLast:     snapshot.ClientLast,
		ClientEmail:    clientEmail,
		ClientPhone:    clientPhone,
		ProjectID:      snapshot.ProjectID,
		ProjectName:    snapshot.ProjectName,
		ProjectHourly:  snapshot.HourlyRate,
		TimeEntries:    entryIds,
		TimeEntriesSum: models.SumSeconds(entries),
		LineItems:      []billing.LineItem{},
		Paid:           false,
		Draft:          true,
	}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(invoice).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewUpdate().Model((*models.TimeEntry)(nil)).
			Set("invoice_id = ?", invoice.ID).
			Where("id IN (?)", bun.In(entryIds)).
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// AddEntriesToInvoice merges a batch of entries into an existing draft
// invoice: entry ids are appended, the time sum grows by the new entries and
// the billing period widens to the min/max of old and new.
func (svc *OpsdeskService) AddEntriesToInvoice(ctx context.Context, invoiceId string, entryIds []int64, now time.Time) (*models.Invoice, error) {
	invoice, err := svc.FindInvoice(ctx, invoiceId)
	if err != nil {
		return nil, err
	}
	if !invoice.Draft {
		return nil, ErrInvoicePublished
	}

	entries, err := svc.selectableEntries(ctx, entryIds)
	if err != nil {
		return nil, err
	}
	// the batch is homogeneous, but it must also match the invoice's client
	if entries[0].ClientID != invoice.ClientID {
		return nil, ErrMixedClientSelection
	}

	starts := make([]time.Time, len(entries))
	for i := range entries {
		starts[i] = entries[i].StartTime
	}
	newPeriod, _ := billing.PeriodOf(starts)
	merged := invoice.Period().Merge(newPeriod)

	invoice.TimeEntries = append(invoice.TimeEntries, entryIds...)
	invoice.TimeEntriesSum += models.SumSeconds(entries)
	invoice.StartDate = merged.Start
	invoice.EndDate = merged.End

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(invoice).WherePK().Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewUpdate().Model((*models.TimeEntry)(nil)).
			Set("invoice_id = ?", invoice.ID).
			Where("id IN (?)", bun.In(entryIds)).
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateInvoice edits the mutable billing terms of a draft invoice. Line
// item totals are recomputed server-side.
func (svc *OpsdeskService) UpdateInvoice(ctx context.Context, invoiceId string, params UpdateInvoiceParams) (*models.Invoice, error) {
	invoice, err := svc.FindInvoice(ctx, invoiceId)
	if err != nil {
		return nil, err
	}
	if !invoice.Draft {
		return nil, ErrInvoicePublished
	}

	items := params.LineItems
	if items == nil {
		items = []billing.LineItem{}
	}
	for i := range items {
		items[i].Total = items[i].Amount()
	}

	invoice.LineItems = items
	invoice.LineItemsTotal = billing.LineItemsTotal(items)
	invoice.ProjectCosts = params.ProjectCosts
	invoice.Adjustments = params.Adjustments
	invoice.AdjustmentsDescriptor = params.AdjustmentsDescriptor
	invoice.Fees = params.Fees
	invoice.Notes = params.Notes
	invoice.PrivateNotes = params.PrivateNotes

	if _, err := svc.DB.NewUpdate().Model(invoice).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return invoice, nil
}

// PublishInvoice is the one-way draft-to-published transition. Every
// referenced entry gets the invoice id stamped (idempotent) and billable
// forced false, locking it against future invoicing. The entry updates and
// the draft flip commit in one transaction. Publishing an already published
// invoice is a no-op.
func (svc *OpsdeskService) PublishInvoice(ctx context.Context, invoiceId string) (*models.Invoice, error) {
	invoice, err := svc.FindInvoice(ctx, invoiceId)
	if err != nil {
		return nil, err
	}
	if !invoice.Draft {
		return invoice, nil
	}

	invoice.Draft = false
	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if len(invoice.TimeEntries) > 0 {
			if _, err := tx.NewUpdate().Model((*models.TimeEntry)(nil)).
				Set("invoice_id = ?", invoice.ID).
				Set("billable = false").
				Where("id IN (?)", bun.In(invoice.TimeEntries)).
				Exec(ctx); err != nil {
				return err
			}
		}
		_, err := tx.NewUpdate().Model(invoice).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	svc.publishInvoiceEvent(ctx, rabbitmq.EventInvoicePublished, invoice)
	return invoice, nil
}

// MarkInvoicePaid records payment on a published invoice. A payment method
// is required; fees are optional and always subtract from the grand total.
// Re-editing payment details is allowed.
func (svc *OpsdeskService) MarkInvoicePaid(ctx context.Context, invoiceId, paymentMethod string, receivedAt time.Time, fees *float64) (*models.Invoice, error) {
	if paymentMethod == "" {
		return nil, ErrPaymentMethodRequired
	}
	invoice, err := svc.FindInvoice(ctx, invoiceId)
	if err != nil {
		return nil, err
	}
	if invoice.Draft {
		return nil, ErrInvoiceDraft
	}

	invoice.Paid = true
	invoice.PaymentMethod = paymentMethod
	invoice.DatePaymentReceived = bun.NullTime{Time: receivedAt}
	if fees != nil {
		invoice.Fees = *fees
	}
	if _, err := svc.DB.NewUpdate().Model(invoice).WherePK().Exec(ctx); err != nil {
		return nil, err
	}

	svc.publishInvoiceEvent(ctx, rabbitmq.EventInvoicePaid, invoice)
	return invoice, nil
}

// publishInvoiceEvent emits a lifecycle event when a broker is configured.
// Delivery is best effort; billing state never depends on it.
func (svc *OpsdeskService) publishInvoiceEvent(ctx context.Context, eventType string, invoice *models.Invoice) {
	if svc.InvoiceEvents == nil {
		return
	}
	err := svc.InvoiceEvents.PublishInvoiceEvent(ctx, rabbitmq.InvoiceEvent{
		Type:       eventType,
		InvoiceID:  invoice.ID,
		ClientID:   invoice.ClientID,
		GrandTotal: invoice.Totals().GrandTotal(),
		OccurredAt: time.Now(),
	})
	if err != nil {
		svc.Logger.Errorf("Failed to publish invoice event %s for %s: %v", eventType, invoice.ID, err)
	}
}
