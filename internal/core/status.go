package core

import "strings"

// StatusCategory is the visual category a status value is styled with.
type StatusCategory string

const (
	StatusPending   StatusCategory = "pending"
	StatusActive    StatusCategory = "active"
	StatusCompleted StatusCategory = "completed"
	StatusCancelled StatusCategory = "cancelled"
	StatusWarning   StatusCategory = "warning"
	StatusError     StatusCategory = "error"
	StatusSuccess   StatusCategory = "success"
	StatusInfo      StatusCategory = "info"
)

// StatusStyles maps each category to the style token used by badges.
var StatusStyles = map[StatusCategory]string{
	StatusPending:   "bg-warning/10 text-warning border-warning/20",
	StatusActive:    "bg-success/10 text-success border-success/20",
	StatusCompleted: "bg-primary/10 text-primary border-primary/20",
	StatusCancelled: "bg-destructive/10 text-destructive border-destructive/20",
	StatusWarning:   "bg-warning/10 text-warning border-warning/20",
	StatusError:     "bg-destructive/10 text-destructive border-destructive/20",
	StatusSuccess:   "bg-success/10 text-success border-success/20",
	StatusInfo:      "bg-info/10 text-info border-info/20",
}

// Status is a classified status value.
type Status struct {
	Category StatusCategory `json:"category"`
	Label    string         `json:"label"` // Original text, casing preserved
}

// Style returns the style token for the status category.
func (s Status) Style() string {
	if style, ok := StatusStyles[s.Category]; ok {
		return style
	}
	return StatusStyles[StatusInfo]
}

// ClassifyStatus maps free-form status text to a category.
// Matching is case-insensitive; unknown and empty values are info.
func ClassifyStatus(status string) Status {
	category := StatusCategory(strings.ToLower(status))
	if _, ok := StatusStyles[category]; !ok {
		category = StatusInfo
	}
	return Status{Category: category, Label: status}
}
