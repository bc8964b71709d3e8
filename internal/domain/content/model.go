package content

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the publishing state of a content pipeline item.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusWaitingApproval Status = "waiting_approval"
	StatusApproved        Status = "approved"
	StatusPublished       Status = "published"
	StatusRejected        Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusWaitingApproval, StatusApproved, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusPublished || s == StatusRejected
}

// transitions encodes the legal state machine edges:
// draft -> waiting_approval -> approved -> published, with rejected
// reachable from waiting_approval or approved.
var transitions = map[Status][]Status{
	StatusDraft:           {StatusWaitingApproval},
	StatusWaitingApproval: {StatusApproved, StatusRejected},
	StatusApproved:        {StatusPublished, StatusRejected},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Outputs is the per-channel artifact bag. Payloads are produced by
// downstream content tooling and are opaque to the pipeline.
type Outputs struct {
	Blog     json.RawMessage `json:"blog,omitempty"`
	LinkedIn json.RawMessage `json:"linkedin,omitempty"`
	Twitter  json.RawMessage `json:"twitter,omitempty"`
	TikTok   json.RawMessage `json:"tiktok,omitempty"`
}

// PipelineItem links one or more trend signals to a content cycle and
// tracks its publishing status.
type PipelineItem struct {
	ID             string    `json:"id"`
	TrendSignalIDs []string  `json:"trendSignalIds"`
	WeekOf         string    `json:"weekOf"`
	Status         Status    `json:"status"`
	Outputs        Outputs   `json:"outputs"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// WeekOf formats t as an ISO week bucket (YYYY-WW).
func WeekOf(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", year, week)
}
