package dashboard

import (
	"foodshare-backend/internal/auth"
	"foodshare-backend/internal/database"
	"foodshare-backend/internal/donation"
	"foodshare-backend/internal/entries"
	"foodshare-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DashboardResponse struct {
	Date     string                   `json:"date"`
	Planned  *models.PlannedEntry     `json:"planned"`
	Closed   *models.CloseDayEntry    `json:"closed"`
	Requests []models.DonationRequest `json:"requests"`
}

// GET /dashboard
// Bugünün planlanan/kapanış kayıtları ve restorana gelen talepler (en yeni önce).
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		today := models.Today()
		planned, err := entries.LatestPlanned(database.DB, userID, today)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Günlük kayıt okunamadı")
		}
		closed, err := entries.LatestClosed(database.DB, userID, today)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Günlük kayıt okunamadı")
		}

		requests, err := donation.ListForOwner(database.DB, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talepler listelenemedi")
		}

		// Tarayıcı geri tuşunda eski paneli göstermesin
		c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate, private")

		return c.JSON(DashboardResponse{
			Date:     models.DayKey(today),
			Planned:  planned,
			Closed:   closed,
			Requests: requests,
		})
	}
}
