// Package kitchen restoran sahibinin günlük defteri: sabah planlanan miktarlar,
// akşam satılanlar ve zayiat.
package kitchen

import (
	"fmt"
	"time"

	"foodshare-backend/internal/entries"
	"foodshare-backend/internal/models"
	"foodshare-backend/internal/quantity"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PlannedInput sabah formu. Alanlar serbest metindir ("10 tabak").
type PlannedInput struct {
	Dal    string `json:"dal_qty" form:"dal_qty"`
	Chawal string `json:"chawal_qty" form:"chawal_qty"`
	Sabji  string `json:"sabji_qty" form:"sabji_qty"`
}

// CloseDayInput akşam formu.
type CloseDayInput struct {
	SoldDal    string `json:"sold_dal" form:"sold_dal"`
	SoldChawal string `json:"sold_chawal" form:"sold_chawal"`
	SoldSabji  string `json:"sold_sabji" form:"sold_sabji"`
}

// MaxQuantity bir kalem için kabul edilen en büyük porsiyon sayısı.
const MaxQuantity = 1_000_000

// parseNonNegative metni parse eder; negatif ya da MaxQuantity üstü değer yazma sınırında reddedilir.
func parseNonNegative(field, text string) (int, error) {
	n := quantity.Parse(text)
	if n < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, field+" negatif olamaz")
	}
	if n > MaxQuantity {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s en fazla %d olabilir", field, MaxQuantity))
	}
	return n, nil
}

// SavePlanned günün planlanan kaydını oluşturur ya da üzerine yazar.
// İkinci dönüş değeri kaydın önceki halidir (yoksa nil).
func SavePlanned(db *gorm.DB, userID uint, day time.Time, in PlannedInput) (*models.PlannedEntry, *models.PlannedEntry, error) {
	dal, err := parseNonNegative("dal_qty", in.Dal)
	if err != nil {
		return nil, nil, err
	}
	chawal, err := parseNonNegative("chawal_qty", in.Chawal)
	if err != nil {
		return nil, nil, err
	}
	sabji, err := parseNonNegative("sabji_qty", in.Sabji)
	if err != nil {
		return nil, nil, err
	}

	existing, err := entries.LatestPlanned(db, userID, day)
	if err != nil {
		return nil, nil, err
	}

	var before *models.PlannedEntry
	entry := existing
	if entry == nil {
		entry = &models.PlannedEntry{UserID: userID, Date: day}
	} else {
		snapshot := *existing
		before = &snapshot
	}

	entry.DalText, entry.ChawalText, entry.SabjiText = in.Dal, in.Chawal, in.Sabji
	entry.DalQty, entry.ChawalQty, entry.SabjiQty = dal, chawal, sabji

	if err := db.Save(entry).Error; err != nil {
		return nil, nil, err
	}
	return entry, before, nil
}

// CloseDay satılan miktarları kaydeder ve zayiatı o anki planlanan kayda göre hesaplar.
// Planlanan kayıt yoksa zayiat 0 kabul edilir.
func CloseDay(db *gorm.DB, userID uint, day time.Time, in CloseDayInput) (*models.CloseDayEntry, *models.CloseDayEntry, error) {
	soldDal, err := parseNonNegative("sold_dal", in.SoldDal)
	if err != nil {
		return nil, nil, err
	}
	soldChawal, err := parseNonNegative("sold_chawal", in.SoldChawal)
	if err != nil {
		return nil, nil, err
	}
	soldSabji, err := parseNonNegative("sold_sabji", in.SoldSabji)
	if err != nil {
		return nil, nil, err
	}

	planned, err := entries.LatestPlanned(db, userID, day)
	if err != nil {
		return nil, nil, err
	}

	var dalWaste, chawalWaste, sabjiWaste int
	if planned != nil {
		dalWaste = entries.Waste(planned.DalQty, soldDal)
		chawalWaste = entries.Waste(planned.ChawalQty, soldChawal)
		sabjiWaste = entries.Waste(planned.SabjiQty, soldSabji)
	}

	existing, err := entries.LatestClosed(db, userID, day)
	if err != nil {
		return nil, nil, err
	}

	var before *models.CloseDayEntry
	entry := existing
	if entry == nil {
		entry = &models.CloseDayEntry{UserID: userID, Date: day}
	} else {
		snapshot := *existing
		before = &snapshot
	}

	entry.SoldDalText, entry.SoldChawalText, entry.SoldSabjiText = in.SoldDal, in.SoldChawal, in.SoldSabji
	entry.SoldDalQty, entry.SoldChawalQty, entry.SoldSabjiQty = soldDal, soldChawal, soldSabji
	entry.DalWaste, entry.ChawalWaste, entry.SabjiWaste = dalWaste, chawalWaste, sabjiWaste

	if err := db.Save(entry).Error; err != nil {
		return nil, nil, err
	}
	return entry, before, nil
}
