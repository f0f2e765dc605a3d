package kitchen

import (
	"errors"
	"fmt"
	"log"

	"foodshare-backend/internal/audit"
	"foodshare-backend/internal/auth"
	"foodshare-backend/internal/database"
	"foodshare-backend/internal/entries"
	"foodshare-backend/internal/forecast"
	"foodshare-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DayResponse struct {
	Date    string                `json:"date"`
	Planned *models.PlannedEntry  `json:"planned"`
	Closed  *models.CloseDayEntry `json:"closed"`
}

func asFiberError(err error, fallback string) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	log.Printf("%s: %v", fallback, err)
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

func todayEntries(c *fiber.Ctx) (DayResponse, error) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return DayResponse{}, err
	}

	today := models.Today()
	planned, err := entries.LatestPlanned(database.DB, userID, today)
	if err != nil {
		return DayResponse{}, fiber.NewError(fiber.StatusInternalServerError, "Günlük kayıt okunamadı")
	}
	closed, err := entries.LatestClosed(database.DB, userID, today)
	if err != nil {
		return DayResponse{}, fiber.NewError(fiber.StatusInternalServerError, "Günlük kayıt okunamadı")
	}

	return DayResponse{Date: models.DayKey(today), Planned: planned, Closed: closed}, nil
}

// GET /add-food, GET /close_day
// Formu doldurmak için bugünün mevcut kayıtlarını döner.
func TodayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := todayEntries(c)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

// POST /add-food
func AddFoodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body PlannedInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		today := models.Today()
		entry, before, err := SavePlanned(database.DB, userID, today, body)
		if err != nil {
			return asFiberError(err, "Planlanan yemek kaydedilemedi")
		}

		action := models.AuditActionCreate
		if before != nil {
			action = models.AuditActionUpdate
		}
		audit.Record(c, audit.Entry{
			EntityType:  audit.EntityPlanned,
			EntityID:    entry.ID,
			Action:      action,
			Description: fmt.Sprintf("Planlanan: dal %d, chawal %d, sabji %d (%s)", entry.DalQty, entry.ChawalQty, entry.SabjiQty, models.DayKey(today)),
			Before:      before,
			After:       entry,
		})

		return c.JSON(fiber.Map{
			"message": "Bugünün planlanan yemekleri güncellendi",
			"planned": entry,
		})
	}
}

// POST /close_day
// Satılanları kaydeder, zayiatı hesaplar ve günün satırını eğitim CSV'sine ekler.
func CloseDayHandler(csvLog *TrainingCSV) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CloseDayInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		today := models.Today()
		entry, before, err := CloseDay(database.DB, userID, today, body)
		if err != nil {
			return asFiberError(err, "Gün kapatılamadı")
		}

		action := models.AuditActionCreate
		if before != nil {
			action = models.AuditActionUpdate
		}
		audit.Record(c, audit.Entry{
			EntityType:  audit.EntityCloseDay,
			EntityID:    entry.ID,
			Action:      action,
			Description: fmt.Sprintf("Zayiat: dal %d, chawal %d, sabji %d (%s)", entry.DalWaste, entry.ChawalWaste, entry.SabjiWaste, models.DayKey(today)),
			Before:      before,
			After:       entry,
		})

		// CSV yan kaydı isteği bozmaz
		df, err := forecast.BuildForDay(database.DB, userID, today)
		if err != nil {
			log.Printf("[WARN] Eğitim satırı oluşturulamadı: %v", err)
		} else if df != nil {
			if err := csvLog.Append(*df); err != nil {
				log.Printf("[WARN] Eğitim CSV'sine yazılamadı: %v", err)
			}
		}

		return c.JSON(fiber.Map{
			"message": "Gün başarıyla kapatıldı",
			"closed":  entry,
		})
	}
}
