package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Client : Client Model
type Client struct {
	bun.BaseModel `bun:"table:clients"`

	ID                 string    `json:"id" bun:",pk,type:uuid"`
	ClientFirst        string    `json:"client_first" bun:",notnull" validate:"required"`
	ClientLast         string    `json:"client_last" bun:",nullzero"`
	ClientEmail        string    `json:"client_email" bun:",nullzero"`
	ClientPhone        string    `json:"client_phone" bun:",nullzero"`
	ClientCompany      string    `json:"client_company" bun:",nullzero"`
	ClientColor        string    `json:"client_color" bun:",nullzero"`
	ClientImage        string    `json:"client_image" bun:",nullzero"`
	ClientBillableRate *float64  `json:"client_billable_rate" bun:",nullzero"`
	CreatedAt          time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
