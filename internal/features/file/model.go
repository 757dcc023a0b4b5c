package file

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxPhotoSize caps an uploaded contact photo.
const MaxPhotoSize = 10 << 20

// extensions maps the accepted photo content types to the stored extension.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Photo describes the stored photo of a contact.
type Photo struct {
	ContactID  primitive.ObjectID `json:"contact_id"`
	URL        string             `json:"url"`
	Size       int64              `json:"size"`
	MimeType   string             `json:"mime_type"`
	UploadedAt time.Time          `json:"uploaded_at"`
}
