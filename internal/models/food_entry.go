package models

import "time"

// PlannedEntry: sabah girilen, o gün pişirilmesi planlanan miktarlar.
// (user_id, date) başına tek kayıt tutulur.
type PlannedEntry struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"not null;uniqueIndex:idx_planned_user_date" json:"user_id"`
	User   User      `json:"-"`
	Date   time.Time `gorm:"not null;uniqueIndex:idx_planned_user_date" json:"date"`

	// Formdan geldiği haliyle ("10 tabak")
	DalText    string `gorm:"size:100" json:"dal"`
	ChawalText string `gorm:"size:100" json:"chawal"`
	SabjiText  string `gorm:"size:100" json:"sabji"`

	// Yazarken bir kez parse edilmiş değerler
	DalQty    int `gorm:"not null;default:0" json:"dal_qty"`
	ChawalQty int `gorm:"not null;default:0" json:"chawal_qty"`
	SabjiQty  int `gorm:"not null;default:0" json:"sabji_qty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p PlannedEntry) Qty(d Dish) int {
	switch d {
	case DishDal:
		return p.DalQty
	case DishChawal:
		return p.ChawalQty
	case DishSabji:
		return p.SabjiQty
	}
	return 0
}

// CloseDayEntry: gün sonu satılan miktarlar ve kapanışta hesaplanan zayiat.
// Zayiat kapanış anında bir kez hesaplanır, sonradan yeniden hesaplanmaz.
type CloseDayEntry struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"not null;uniqueIndex:idx_close_day_user_date" json:"user_id"`
	User   User      `json:"-"`
	Date   time.Time `gorm:"not null;uniqueIndex:idx_close_day_user_date" json:"date"`

	SoldDalText    string `gorm:"size:100" json:"sold_dal"`
	SoldChawalText string `gorm:"size:100" json:"sold_chawal"`
	SoldSabjiText  string `gorm:"size:100" json:"sold_sabji"`

	SoldDalQty    int `gorm:"not null;default:0" json:"sold_dal_qty"`
	SoldChawalQty int `gorm:"not null;default:0" json:"sold_chawal_qty"`
	SoldSabjiQty  int `gorm:"not null;default:0" json:"sold_sabji_qty"`

	DalWaste    int `gorm:"not null;default:0" json:"dal_waste"`
	ChawalWaste int `gorm:"not null;default:0" json:"chawal_waste"`
	SabjiWaste  int `gorm:"not null;default:0" json:"sabji_waste"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c CloseDayEntry) Sold(d Dish) int {
	switch d {
	case DishDal:
		return c.SoldDalQty
	case DishChawal:
		return c.SoldChawalQty
	case DishSabji:
		return c.SoldSabjiQty
	}
	return 0
}

func (c CloseDayEntry) Waste(d Dish) int {
	switch d {
	case DishDal:
		return c.DalWaste
	case DishChawal:
		return c.ChawalWaste
	case DishSabji:
		return c.SabjiWaste
	}
	return 0
}
