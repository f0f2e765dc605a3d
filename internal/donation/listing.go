package donation

import (
	"time"

	"foodshare-backend/internal/entries"
	"foodshare-backend/internal/models"

	"gorm.io/gorm"
)

// Listing ana sayfada gösterilen, bugün artan yemeği olan restoran.
type Listing struct {
	RestaurantID uint   `json:"restaurant_id"`
	Restaurant   string `json:"restaurant"`
	Dal          int    `json:"dal"`
	Chawal       int    `json:"chawal"`
	Sabji        int    `json:"sabji"`
}

func (l Listing) HasLeftovers() bool {
	return l.Dal > 0 || l.Chawal > 0 || l.Sabji > 0
}

// Remaining planlanan - satılan (negatif olamaz), yemek bazında.
func Remaining(planned models.PlannedEntry, closed models.CloseDayEntry) (dal, chawal, sabji int) {
	dal = entries.Waste(planned.DalQty, closed.SoldDalQty)
	chawal = entries.Waste(planned.ChawalQty, closed.SoldChawalQty)
	sabji = entries.Waste(planned.SabjiQty, closed.SoldSabjiQty)
	return
}

// TodayListings gün kapanmış ve en az bir yemeği artmış restoranları döner.
// Kapanış yoksa zayiat henüz bilinmediği için restoran listelenmez.
func TodayListings(db *gorm.DB, day time.Time) ([]Listing, error) {
	var planned []models.PlannedEntry
	if err := db.Preload("User").Where("date = ?", day).Order("id ASC").Find(&planned).Error; err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(planned))
	seen := make(map[uint]bool, len(planned))
	for _, p := range planned {
		if seen[p.UserID] {
			continue
		}
		seen[p.UserID] = true

		// Aynı gün için mükerrer planlanan kayıt varsa en son eklenen geçerli
		latest, err := entries.LatestPlanned(db, p.UserID, day)
		if err != nil {
			return nil, err
		}
		closed, err := entries.LatestClosed(db, p.UserID, day)
		if err != nil {
			return nil, err
		}
		if latest == nil || closed == nil {
			continue
		}

		dal, chawal, sabji := Remaining(*latest, *closed)
		l := Listing{
			RestaurantID: p.UserID,
			Restaurant:   p.User.Username,
			Dal:          dal,
			Chawal:       chawal,
			Sabji:        sabji,
		}
		if l.HasLeftovers() {
			listings = append(listings, l)
		}
	}
	return listings, nil
}
