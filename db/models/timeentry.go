package models

import (
	"context"
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// ProjectSnapshot is the point-in-time copy of project and client display
// fields embedded in a time entry when it is created. It is a value object,
// not a foreign key: historical entries may show stale names and rates by
// design.
type ProjectSnapshot struct {
	ProjectID    string   `json:"project_id"`
	ProjectName  string   `json:"project_name"`
	ProjectColor string   `json:"project_color,omitempty"`
	ProjectImage string   `json:"project_image,omitempty"`
	HourlyRate   *float64 `json:"hourly_rate,omitempty"`
	ClientID     string   `json:"client_id"`
	ClientFirst  string   `json:"client_first,omitempty"`
	ClientLast   string   `json:"client_last,omitempty"`
	Active       bool     `json:"active,omitempty"`
}

// UnmarshalJSON accepts both the structured object form and the legacy
// double-encoded string form of the column, so the value is parsed once at
// the boundary and never branched on downstream.
func (s *ProjectSnapshot) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		data = []byte(raw)
	}
	type snapshot ProjectSnapshot
	var v snapshot
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = ProjectSnapshot(v)
	return nil
}

// SnapshotProject captures the denormalized display fields for a new entry.
func SnapshotProject(p *Project, c *Client) ProjectSnapshot {
	snap := ProjectSnapshot{
		ProjectID:    p.ID,
		ProjectName:  p.ProjectName,
		ProjectColor: p.Color,
		ProjectImage: p.ProjectImage,
		HourlyRate:   p.HourlyRate,
		ClientID:     p.ClientID,
		Active:       p.Active,
	}
	if c != nil {
		snap.ClientFirst = c.ClientFirst
		snap.ClientLast = c.ClientLast
	}
	return snap
}

// TimeEntry : Time Entry Model
//
// One recorded (or in-progress) span of tracked work. While the timer runs,
// EndTime and TimeLapsed stay null and TrackingFinished is false. Once the
// entry is included in a published invoice, InvoiceID is set and Billable is
// forced false.
type TimeEntry struct {
	bun.BaseModel `bun:"table:time_entries"`

	ID               int64           `json:"id" bun:",pk,autoincrement"`
	StartTime        time.Time       `json:"start_time" bun:",notnull"`
	EndTime          bun.NullTime    `json:"end_time"`
	TimeLapsed       *int64          `json:"time_lapsed" bun:",nullzero"`
	ClientID         string          `json:"client_id" bun:",notnull,type:uuid"`
	Description      string          `json:"description" bun:",nullzero"`
	Project          ProjectSnapshot `json:"project" bun:"project,type:jsonb"`
	Billable         bool            `json:"billable" bun:",notnull,default:true"`
	TrackingFinished bool            `json:"tracking_finished" bun:",notnull,default:false"`
	InvoiceID        string          `json:"invoice_id,omitempty" bun:",nullzero"`
	CreatedAt        time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt        bun.NullTime    `json:"updated_at"`
}

func (e *TimeEntry) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		e.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

// Seconds returns the persisted elapsed seconds, 0 while the entry runs.
func (e *TimeEntry) Seconds() int64 {
	if e.TimeLapsed == nil {
		return 0
	}
	return *e.TimeLapsed
}

// SumSeconds totals the elapsed seconds over a set of entries, treating
// missing durations as 0.
func SumSeconds(entries []TimeEntry) int64 {
	var sum int64
	for i := range entries {
		sum += entries[i].Seconds()
	}
	return sum
}

var _ bun.BeforeAppendModelHook = (*TimeEntry)(nil)
