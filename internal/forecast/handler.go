package forecast

import (
	"crypto/subtle"
	"log"

	"foodshare-backend/internal/auth"
	"foodshare-backend/internal/database"
	"foodshare-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PredictResponse tahmin yoksa alanlar null döner.
type PredictResponse struct {
	Date   string `json:"date"`
	Dal    *int   `json:"dal_pred"`
	Chawal *int   `json:"chawal_pred"`
	Sabji  *int   `json:"sabji_pred"`
}

// GET /predict
func PredictPageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(PredictResponse{Date: models.DayKey(models.Today())})
	}
}

// POST /predict
// Bugünün planlanan ve kapanış kayıtlarıyla yarın için miktar önerir.
func PredictHandler(p *Predictor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		today := models.Today()
		resp := PredictResponse{Date: models.DayKey(today)}

		pred, err := p.PredictFor(database.DB, userID, today)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tahmin hesaplanamadı")
		}
		if pred != nil {
			resp.Dal = &pred.Dal
			resp.Chawal = &pred.Chawal
			resp.Sabji = &pred.Sabji
		}

		return c.JSON(resp)
	}
}

// ReloadTokenHeader model yenileme isteğinde operatör anahtarının taşındığı başlık.
const ReloadTokenHeader = "X-Reload-Token"

// POST /predict/reload
// Yeniden eğitimden sonra model dosyalarını sunucuyu kapatmadan yükler.
// Model seti tüm restoranlar için ortak olduğundan sadece operatör anahtarıyla çağrılabilir;
// anahtar tanımlı değilse uç kapalıdır.
func ReloadModelsHandler(p *Predictor, reloadToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if reloadToken == "" {
			return fiber.NewError(fiber.StatusForbidden, "Model yenileme kapalı (MODEL_RELOAD_TOKEN tanımlı değil)")
		}
		if subtle.ConstantTimeCompare([]byte(c.Get(ReloadTokenHeader)), []byte(reloadToken)) != 1 {
			return fiber.NewError(fiber.StatusForbidden, "Model yenileme yetkisi yok")
		}

		if err := p.Reload(); err != nil {
			log.Printf("[WARN] Modeller yeniden yüklenemedi: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Modeller yeniden yüklenemedi, eski modeller kullanılmaya devam ediyor")
		}

		set := p.Models()
		log.Printf("Modeller yeniden yüklendi (run_id=%s, kullanıcı=%s)", set[models.DishDal].RunID, auth.CurrentUsername(c))

		return c.JSON(fiber.Map{
			"message":    "Modeller yeniden yüklendi",
			"run_id":     set[models.DishDal].RunID,
			"trained_at": set[models.DishDal].TrainedAt,
		})
	}
}
