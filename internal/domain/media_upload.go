package domain

import (
	"time"

	"github.com/google/uuid"
)

// MediaUpload tracks an object handed to the media storage collaborator.
// The pipeline only ever consumes the {SecureURL, PublicID, AssetID}
// triple; transport details stay behind the bucket service.
type MediaUpload struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Type           MediaType  `gorm:"size:16;not null;column:type" json:"type"`
	TenantID       uuid.UUID  `gorm:"type:uuid;index;not null;column:tenant_id" json:"tenant_id"`
	ProfessionalID uuid.UUID  `gorm:"type:uuid;index;not null;column:professional_id" json:"professional_id"`
	AppointmentID  *uuid.UUID `gorm:"type:uuid;column:appointment_id" json:"appointment_id"`
	SecureURL      string     `gorm:"type:text;not null;column:secure_url" json:"secure_url"`
	PublicID       string     `gorm:"type:text;not null;column:public_id" json:"public_id"`
	AssetID        string     `gorm:"type:text;not null;column:asset_id" json:"asset_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (MediaUpload) TableName() string { return "media_uploads" }
