package forecast

import (
	"errors"

	"foodshare-backend/internal/models"

	"gorm.io/gorm"
)

// MinTrainingRows eşleşmiş (planlanan + kapanış) gün sayısı bunun altındaysa eğitim yapılmaz.
const MinTrainingRows = 10

var ErrInsufficientData = errors.New("modeli eğitmek için yeterli veri yok")

// Sample tek bir eğitim satırı: girdi ve bir sonraki satırın planlanan miktarı.
type Sample struct {
	X []float64
	Y float64
}

// AssembleHistory tüm planlanan kayıtları (kullanıcı, tarih) sırasıyla gezer ve
// aynı gün kapanışı olanları özellik satırına çevirir.
func AssembleHistory(db *gorm.DB) ([]DayFeatures, error) {
	var planned []models.PlannedEntry
	if err := db.Order("user_id ASC, date ASC, id ASC").Find(&planned).Error; err != nil {
		return nil, err
	}

	var closed []models.CloseDayEntry
	if err := db.Order("id ASC").Find(&closed).Error; err != nil {
		return nil, err
	}

	type key struct {
		userID uint
		day    string
	}
	// Aynı gün için birden fazla kapanış varsa en son eklenen kazanır
	byDay := make(map[key]models.CloseDayEntry, len(closed))
	for _, c := range closed {
		byDay[key{c.UserID, models.DayKey(c.Date)}] = c
	}

	rows := make([]DayFeatures, 0, len(planned))
	for _, p := range planned {
		c, ok := byDay[key{p.UserID, models.DayKey(p.Date)}]
		if !ok {
			continue
		}
		rows = append(rows, FeaturesFrom(p, c))
	}
	return rows, nil
}

// BuildSamples her yemek için hedefi bir satır yukarı kaydırır: i. satırın hedefi
// (i+1). satırın planlanan miktarıdır, son satır düşer.
//
// Varsayılan kaydırma tüm sıralı tablo boyunca yapılır, restoran sınırlarında bir
// satır başka restoranın ertesi gününü hedef alabilir. partitionByOwner true ise
// sadece aynı restoranın sonraki satırı hedef olur.
func BuildSamples(rows []DayFeatures, partitionByOwner bool) map[models.Dish][]Sample {
	out := make(map[models.Dish][]Sample, len(models.Dishes))
	for i := 0; i+1 < len(rows); i++ {
		next := rows[i+1]
		if partitionByOwner && next.OwnerID != rows[i].OwnerID {
			continue
		}
		for _, d := range models.Dishes {
			out[d] = append(out[d], Sample{
				X: rows[i].Dishes[d].Row(),
				Y: float64(next.Dishes[d].Added),
			})
		}
	}
	return out
}
