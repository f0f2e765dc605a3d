package audit

import (
	"fmt"

	"foodshare-backend/internal/auth"
	"foodshare-backend/internal/database"
	"foodshare-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      uint               `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
}

// GET /audit-logs?entity_type=donation_request&entity_id=1&limit=100
// Restoran sahibi sadece kendi loglarını görür.
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.AuditLog{}).Where("user_id = ?", userID)

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}

		if entityIDStr := c.Query("entity_id"); entityIDStr != "" {
			var eid uint
			if _, err := fmt.Sscan(entityIDStr, &eid); err == nil && eid > 0 {
				dbq = dbq.Where("entity_id = ?", eid)
			}
		}

		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
				UserID:      l.UserID,
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
			})
		}

		return c.JSON(resp)
	}
}
