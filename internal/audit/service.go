// Package audit restoran sahibinin yaptığı her yazma işleminin izini tutar.
package audit

import (
	"encoding/json"
	"fmt"
	"log"

	"foodshare-backend/internal/auth"
	"foodshare-backend/internal/database"
	"foodshare-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Kayıt tutulan varlık türleri; /audit-logs?entity_type= filtresiyle aynı değerler.
const (
	EntityPlanned  = "planned_entry"
	EntityCloseDay = "close_day_entry"
	EntityRequest  = "donation_request"
)

// Entry tek bir değişiklik. Sahip bilgisi Entry'de değil, yazan taraftadır.
type Entry struct {
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// snapshot nil ya da serileştirilemeyen değer için JSON "null" döner.
func snapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// Write kaydı ownerID'ye ait olarak yazar; liste ucu sadece sahibin kendi kayıtlarını döner.
func Write(db *gorm.DB, ownerID uint, ownerName string, e Entry) error {
	row := models.AuditLog{
		UserID:      ownerID,
		UserName:    ownerName,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		Description: e.Description,
		BeforeData:  snapshot(e.Before),
		AfterData:   snapshot(e.After),
	}
	if err := db.Create(&row).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}

// Record isteği yapan restoran sahibi adına yazar. Hata isteği bozmaz, sadece loglanır.
func Record(c *fiber.Ctx, e Entry) {
	ownerID, err := auth.CurrentUserID(c)
	if err != nil {
		log.Printf("[WARN] audit: oturum bilgisi yok, %s/%d kaydedilmedi", e.EntityType, e.EntityID)
		return
	}
	if err := Write(database.DB, ownerID, auth.CurrentUsername(c), e); err != nil {
		log.Printf("[WARN] %v", err)
	}
}
