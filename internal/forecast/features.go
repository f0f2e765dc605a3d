package forecast

import (
	"strconv"
	"time"

	"foodshare-backend/internal/entries"
	"foodshare-backend/internal/models"

	"gorm.io/gorm"
)

// DishFeatures bir yemeğin bir günlük model girdisi.
type DishFeatures struct {
	DayOfWeek int `json:"day_of_week"`
	Added     int `json:"qty_added"`
	Sold      int `json:"qty_sold"`
	Waste     int `json:"qty_waste"`
}

// Row FeatureNames sırasıyla model girdisi.
func (f DishFeatures) Row() []float64 {
	return []float64{float64(f.DayOfWeek), float64(f.Added), float64(f.Sold), float64(f.Waste)}
}

// DayFeatures bir restoranın bir gününe ait üç yemeğin özellikleri.
type DayFeatures struct {
	OwnerID   uint
	Date      time.Time
	DayOfWeek int
	Dishes    map[models.Dish]DishFeatures
}

// FeaturesFrom planlanan ve kapanış kayıtlarını özellik setine çevirir.
// Zayiat kapanışta saklanan değerden okunur, yeniden hesaplanmaz.
func FeaturesFrom(planned models.PlannedEntry, closed models.CloseDayEntry) DayFeatures {
	dow := models.Weekday(planned.Date)
	df := DayFeatures{
		OwnerID:   planned.UserID,
		Date:      planned.Date,
		DayOfWeek: dow,
		Dishes:    make(map[models.Dish]DishFeatures, len(models.Dishes)),
	}
	for _, d := range models.Dishes {
		df.Dishes[d] = DishFeatures{
			DayOfWeek: dow,
			Added:     planned.Qty(d),
			Sold:      closed.Sold(d),
			Waste:     closed.Waste(d),
		}
	}
	return df
}

// BuildForDay (kullanıcı, gün) için özellikleri toplar. Kayıtlardan biri yoksa nil döner.
func BuildForDay(db *gorm.DB, userID uint, day time.Time) (*DayFeatures, error) {
	planned, err := entries.LatestPlanned(db, userID, day)
	if err != nil {
		return nil, err
	}
	closed, err := entries.LatestClosed(db, userID, day)
	if err != nil {
		return nil, err
	}
	if planned == nil || closed == nil {
		return nil, nil
	}

	df := FeaturesFrom(*planned, *closed)
	return &df, nil
}

// CSVHeader eğitim CSV'sinin başlık satırı.
func CSVHeader() []string {
	h := []string{"day_of_week"}
	for _, col := range []string{"added", "sold", "waste"} {
		for _, d := range models.Dishes {
			h = append(h, string(d)+"_"+col)
		}
	}
	return h
}

// CSVRecord CSVHeader ile aynı sırada değerler.
func (df DayFeatures) CSVRecord() []string {
	rec := []string{strconv.Itoa(df.DayOfWeek)}
	for _, d := range models.Dishes {
		rec = append(rec, strconv.Itoa(df.Dishes[d].Added))
	}
	for _, d := range models.Dishes {
		rec = append(rec, strconv.Itoa(df.Dishes[d].Sold))
	}
	for _, d := range models.Dishes {
		rec = append(rec, strconv.Itoa(df.Dishes[d].Waste))
	}
	return rec
}
