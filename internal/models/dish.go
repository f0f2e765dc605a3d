package models

// Dish: takip edilen üç yemek kategorisi.
type Dish string

const (
	DishDal    Dish = "dal"
	DishChawal Dish = "chawal" // pilav
	DishSabji  Dish = "sabji"  // sebze / köri
)

// Dishes sabit sıradadır; CSV kolonları ve model dosyaları bu sırayı izler.
var Dishes = []Dish{DishDal, DishChawal, DishSabji}

func (d Dish) Valid() bool {
	switch d {
	case DishDal, DishChawal, DishSabji:
		return true
	}
	return false
}
