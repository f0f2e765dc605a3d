package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Hangi restoran sahibi?
	UserID   uint   `gorm:"index" json:"user_id"`
	UserName string `gorm:"size:150" json:"user_name"` // denormalize

	// Hangi entity? (ör: "planned_entry", "close_day_entry", "donation_request")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// Önceki ve sonraki hal (JSON)
	BeforeData string `gorm:"type:text" json:"before_data"`
	AfterData  string `gorm:"type:text" json:"after_data"`
}
