package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Project : Project Model
type Project struct {
	bun.BaseModel `bun:"table:projects"`

	ID           string       `json:"id" bun:",pk,type:uuid"`
	ClientID     string       `json:"client_id" bun:",notnull,type:uuid" validate:"required"`
	Client       *Client      `json:"-" bun:"rel:belongs-to,join:client_id=id"`
	ProjectName  string       `json:"project_name" bun:",notnull" validate:"required"`
	Color        string       `json:"color" bun:",nullzero"`
	ProjectImage string       `json:"project_image" bun:",nullzero"`
	HourlyRate   *float64     `json:"hourly_rate" bun:",nullzero"`
	Active       bool         `json:"active" bun:",notnull,default:true"`
	Deadline     bun.NullTime `json:"deadline"`
	CreatedAt    time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
