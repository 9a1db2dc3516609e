package domain

import "time"

// Document is an uploaded file owned by a single user.
type Document struct {
	Filename     string    `json:"filename" bson:"filename"`
	OriginalName string    `json:"original_name" bson:"original_name"`
	OwnerID      string    `json:"-" bson:"owner_id"`
	Size         int64     `json:"size" bson:"size"`
	MimeType     string    `json:"mimetype" bson:"mimetype"`
	UploadedAt   time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
