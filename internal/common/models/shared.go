package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	UserClaimsKey ContextKey = "user_claims"
)

type AuditAction string

const (
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionDelete  AuditAction = "DELETE"
	AuditActionConvert AuditAction = "CONVERT"
	AuditActionCleanup AuditAction = "CLEANUP"
	AuditActionBackup  AuditAction = "BACKUP"
	AuditActionRestore AuditAction = "RESTORE"
	AuditActionImport  AuditAction = "IMPORT"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`
	RecordID  string             `bson:"record_id" json:"record_id"`
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"` // field -> {old, new}
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Log is a persisted application log line (see logger.DBLogWriter).
type Log struct {
	AppID        string                 `bson:"app_id" json:"app_id"`
	Level        string                 `bson:"level" json:"level"`
	Message      string                 `bson:"message" json:"message"`
	Caller       string                 `bson:"caller,omitempty" json:"caller,omitempty"`
	Fields       map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
	CreatedOnUtc time.Time              `bson:"created_on_utc" json:"created_on_utc"`
}

// Page describes a paged list request.
type Page struct {
	Page   int64  `json:"page"`
	Limit  int64  `json:"limit"`
	Search string `json:"search,omitempty"`
}

// Normalize clamps page/limit to sane values and returns the offset.
func (p *Page) Normalize() int64 {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 200 {
		p.Limit = 200
	}
	return (p.Page - 1) * p.Limit
}

// PagedResult is the list envelope returned by every list endpoint.
type PagedResult[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}
