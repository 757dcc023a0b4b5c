package backup

import (
	"fmt"
	"regexp"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/database"
)

var ErrCloudDisabled = fmt.Errorf("cloud backup is not configured: %w", models.ErrValidation)

// Collections are the collections a backup archive carries, in restore order.
var Collections = []string{
	database.CollectionCustomFields,
	database.CollectionContacts,
	database.CollectionLeads,
	database.CollectionDeals,
	database.CollectionFollowUps,
	database.CollectionNotifications,
}

const (
	manifestFile = "manifest.json"
	timeLayout   = "20060102-150405"
)

var namePattern = regexp.MustCompile(`^crm-backup-\d{8}-\d{6}-[0-9a-f]{8}\.zip$`)

// Manifest describes the content of one archive.
type Manifest struct {
	ID          string         `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	AppID       string         `json:"app_id,omitempty"`
	Collections map[string]int `json:"collections"`
}

// FileName is the canonical archive name for the manifest.
func (m *Manifest) FileName() string {
	short := m.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("crm-backup-%s-%s.zip", m.CreatedAt.UTC().Format(timeLayout), short)
}

// ValidName reports whether name is an archive name this service produces.
// Anything else, path separators included, is rejected.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

func checkName(name string) error {
	if !ValidName(name) {
		return models.Invalid("name", fmt.Sprintf("%q is not a backup archive name", name))
	}
	return nil
}

// BackupFile is an archive in the local backup directory.
type BackupFile struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// CloudObject is an archive in the backup bucket.
type CloudObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}
