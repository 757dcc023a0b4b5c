package export

import (
	"time"

	"pocket-crm/internal/common/models"
)

// column is one fixed spreadsheet column of a record kind.
type column[T any] struct {
	header string
	value  func(*T) interface{}
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResult struct {
	Module  models.Module `json:"module"`
	Rows    int           `json:"rows"`
	Created int           `json:"created"`
	Errors  []RowError    `json:"errors"`
}

func formatTime(t time.Time) interface{} {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
