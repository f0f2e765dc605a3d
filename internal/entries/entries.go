// Package entries günlük planlanan / kapanış kayıtlarına ortak erişimi toplar.
package entries

import (
	"errors"
	"time"

	"foodshare-backend/internal/models"

	"gorm.io/gorm"
)

// LatestPlanned (kullanıcı, gün) için en son eklenen planlanan kaydı döner, yoksa nil.
func LatestPlanned(db *gorm.DB, userID uint, day time.Time) (*models.PlannedEntry, error) {
	var p models.PlannedEntry
	err := db.Where("user_id = ? AND date = ?", userID, day).Order("id DESC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LatestClosed (kullanıcı, gün) için en son kapanış kaydını döner, yoksa nil.
func LatestClosed(db *gorm.DB, userID uint, day time.Time) (*models.CloseDayEntry, error) {
	var c models.CloseDayEntry
	err := db.Where("user_id = ? AND date = ?", userID, day).Order("id DESC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Waste planlanan - satılan, negatif olamaz.
func Waste(planned, sold int) int {
	if planned-sold < 0 {
		return 0
	}
	return planned - sold
}
