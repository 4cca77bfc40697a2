package service

import "errors"

var (
	ErrTimerAlreadyRunning   = errors.New("a timer is already running")
	ErrNoRunningTimer        = errors.New("no timer is running")
	ErrEmptySelection        = errors.New("no time entries selected")
	ErrEntryNotFound         = errors.New("selected time entries not found")
	ErrEntryNotFinished      = errors.New("time entry is still being tracked")
	ErrEntryNotBillable      = errors.New("time entry is locked by a published invoice")
	ErrEntryAlreadyInvoiced  = errors.New("time entry already belongs to an invoice")
	ErrMixedClientSelection  = errors.New("selected entries span more than one client")
	ErrInvoicePublished      = errors.New("invoice is published and can no longer be changed")
	ErrInvoiceDraft          = errors.New("invoice must be published first")
	ErrPaymentMethodRequired = errors.New("payment method is required")
)
