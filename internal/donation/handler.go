package donation

import (
	"errors"
	"fmt"
	"log"

	"foodshare-backend/internal/audit"
	"foodshare-backend/internal/auth"
	"foodshare-backend/internal/database"
	"foodshare-backend/internal/entries"
	"foodshare-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RequestResponse struct {
	ID             uint                 `json:"id"`
	Restaurant     string               `json:"restaurant"`
	RequesterName  string               `json:"requester_name"`
	RequesterPhone string               `json:"requester_phone,omitempty"`
	Status         models.RequestStatus `json:"status"`
	CreatedAt      string               `json:"created_at"`
}

func toResponse(req *models.DonationRequest, restaurant string, withPhone bool) RequestResponse {
	r := RequestResponse{
		ID:            req.ID,
		Restaurant:    restaurant,
		RequesterName: req.RequesterName,
		Status:        req.Status,
		CreatedAt:     req.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if withPhone {
		r.RequesterPhone = req.RequesterPhone
	}
	return r
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Talep bulunamadı")
	case errors.Is(err, ErrAlreadyDecided):
		return fiber.NewError(fiber.StatusConflict, "Talep zaten yanıtlanmış")
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, "Ad ve telefon zorunludur")
	case errors.Is(err, ErrInputTooLong):
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Ad en fazla %d, telefon en fazla %d karakter olabilir", maxNameLen, maxPhoneLen))
	case errors.Is(err, ErrInvalidStatus):
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz talep durumu")
	default:
		log.Printf("Talep işlemi hatası: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Talep işlenemedi")
	}
}

func requestIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusNotFound, "Talep bulunamadı")
	}
	return uint(id), nil
}

func findRestaurant(c *fiber.Ctx) (*models.User, error) {
	var restaurant models.User
	if err := database.DB.Where("username = ?", c.Params("restaurant")).First(&restaurant).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Restoran bulunamadı")
	}
	return &restaurant, nil
}

// GET /
// Bugün artan yemeği olan restoranlar.
func HomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		today := models.Today()
		listings, err := TodayListings(database.DB, today)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bağış listesi alınamadı")
		}

		return c.JSON(fiber.Map{
			"date":      models.DayKey(today),
			"donations": listings,
		})
	}
}

// GET /request-food/:restaurant
func RequestFoodPageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurant, err := findRestaurant(c)
		if err != nil {
			return err
		}

		resp := fiber.Map{"restaurant": restaurant.Username}

		today := models.Today()
		planned, err := entries.LatestPlanned(database.DB, restaurant.ID, today)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Restoran bilgisi alınamadı")
		}
		closed, err := entries.LatestClosed(database.DB, restaurant.ID, today)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Restoran bilgisi alınamadı")
		}
		if planned != nil && closed != nil {
			dal, chawal, sabji := Remaining(*planned, *closed)
			resp["remaining"] = fiber.Map{"dal": dal, "chawal": chawal, "sabji": sabji}
		}

		return c.JSON(resp)
	}
}

// POST /request-food/:restaurant
func CreateRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurant, err := findRestaurant(c)
		if err != nil {
			return err
		}

		var body NewRequestInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		req, err := CreateRequest(database.DB, restaurant.ID, body)
		if err != nil {
			return mapError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":    "Talebiniz gönderildi",
			"request":    toResponse(req, restaurant.Username, false),
			"status_url": fmt.Sprintf("/request-status/%d", req.ID),
		})
	}
}

// GET /request-status/:id
// Talep sahibi durumu sorgular; telefon numarası dönülmez.
func RequestStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := requestIDParam(c)
		if err != nil {
			return err
		}

		req, err := GetRequest(database.DB, id)
		if err != nil {
			return mapError(err)
		}

		return c.JSON(toResponse(req, req.Restaurant.Username, false))
	}
}

func decideHandler(status models.RequestStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id, err := requestIDParam(c)
		if err != nil {
			return err
		}

		prev, req, err := Decide(database.DB, id, ownerID, status)
		if err != nil {
			return mapError(err)
		}

		audit.Record(c, audit.Entry{
			EntityType:  audit.EntityRequest,
			EntityID:    req.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Talep %s -> %s (%s)", prev, status, req.RequesterName),
			Before:      fiber.Map{"status": prev},
			After:       fiber.Map{"status": status},
		})

		return c.JSON(toResponse(req, auth.CurrentUsername(c), true))
	}
}

// POST /request/accept/:id
func AcceptRequestHandler() fiber.Handler {
	return decideHandler(models.RequestAccepted)
}

// POST /request/reject/:id
func RejectRequestHandler() fiber.Handler {
	return decideHandler(models.RequestRejected)
}

// POST /delete-request/:id
func DeleteRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id, err := requestIDParam(c)
		if err != nil {
			return err
		}

		req, err := DeleteRequest(database.DB, id, ownerID)
		if err != nil {
			return mapError(err)
		}

		audit.Record(c, audit.Entry{
			EntityType:  audit.EntityRequest,
			EntityID:    req.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Talep silindi: %s", req.RequesterName),
			Before:      req,
		})

		return c.JSON(fiber.Map{"message": "Talep silindi"})
	}
}

// POST /delete-all-requests
func DeleteAllRequestsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		n, err := DeleteAllRequests(database.DB, ownerID)
		if err != nil {
			return mapError(err)
		}

		if n > 0 {
			audit.Record(c, audit.Entry{
				EntityType:  audit.EntityRequest,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Tüm talepler silindi (%d adet)", n),
			})
		}

		return c.JSON(fiber.Map{
			"message": "Tüm yemek talepleri silindi",
			"deleted": n,
		})
	}
}
