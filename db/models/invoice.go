package models

import (
	"context"
	"time"

	"github.com/opsdeskhq/opsdesk/billing"
	"github.com/uptrace/bun"
)

// Invoice : Invoice Model
//
// The identifier is the human-readable {client_id}-{MMDDYYYY} string derived
// at creation. Client and project display fields are denormalized from the
// first selected entry's snapshot. Draft invoices stay mutable; publishing is
// a one-way transition that locks the referenced time entries.
type Invoice struct {
	bun.BaseModel `bun:"table:invoices"`

	ID                    string             `json:"id" bun:",pk"`
	CreatedAt             time.Time          `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	StartDate             time.Time          `json:"start_date" bun:",notnull"`
	EndDate               time.Time          `json:"end_date" bun:",notnull"`
	InvoiceDate           time.Time          `json:"invoice_date" bun:",notnull"`
	InvoiceDue            time.Time          `json:"invoice_due" bun:",notnull"`
	ClientID              string             `json:"client_id" bun:",notnull,type:uuid"`
	ClientFirst           string             `json:"client_first" bun:",nullzero"`
	ClientLast            string             `json:"client_last" bun:",nullzero"`
	ClientEmail           string             `json:"client_email" bun:",nullzero"`
	ClientPhone           string             `json:"client_phone" bun:",nullzero"`
	ProjectID             string             `json:"project_id,omitempty" bun:",nullzero,type:uuid"`
	ProjectName           string             `json:"project_name,omitempty" bun:",nullzero"`
	ProjectHourly         *float64           `json:"project_hourly,omitempty" bun:",nullzero"`
	TimeEntries           []int64            `json:"time_entries" bun:"time_entries,array"`
	TimeEntriesSum        int64              `json:"time_entries_sum" bun:",notnull,default:0"`
	LineItems             []billing.LineItem `json:"line_items" bun:"line_items,type:jsonb"`
	LineItemsTotal        float64            `json:"line_items_total" bun:",notnull,default:0"`
	ProjectCosts          float64            `json:"project_costs" bun:",notnull,default:0"`
	Adjustments           float64            `json:"adjustments" bun:",notnull,default:0"`
	AdjustmentsDescriptor string             `json:"adjustments_descriptor,omitempty" bun:",nullzero"`
	Fees                  float64            `json:"fees" bun:",notnull,default:0"`
	Notes                 string             `json:"notes,omitempty" bun:",nullzero"`
	PrivateNotes          string             `json:"private_notes,omitempty" bun:",nullzero"`
	Paid                  bool               `json:"paid" bun:",notnull,default:false"`
	PaymentMethod         string             `json:"payment_method,omitempty" bun:",nullzero"`
	DatePaymentReceived   bun.NullTime       `json:"date_payment_received"`
	Draft                 bool               `json:"draft" bun:",notnull,default:true"`
	UpdatedAt             bun.NullTime       `json:"updated_at"`
}

func (i *Invoice) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		i.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

// Totals assembles every additive term for the grand total computation.
func (i *Invoice) Totals() billing.Totals {
	return billing.Totals{
		TimeSeconds:  i.TimeEntriesSum,
		HourlyRate:   i.ProjectHourly,
		LineItems:    i.LineItemsTotal,
		ProjectCosts: i.ProjectCosts,
		Adjustments:  i.Adjustments,
		Fees:         i.Fees,
	}
}

// Figures is the invoice's contribution to portfolio statistics.
func (i *Invoice) Figures() billing.InvoiceFigures {
	return billing.InvoiceFigures{
		LineItemsTotal: i.LineItemsTotal,
		TimeSeconds:    i.TimeEntriesSum,
		HourlyRate:     i.ProjectHourly,
	}
}

// Period is the billing period currently covered by the invoice.
func (i *Invoice) Period() billing.Period {
	return billing.Period{Start: i.StartDate, End: i.EndDate}
}

var _ bun.BeforeAppendModelHook = (*Invoice)(nil)
