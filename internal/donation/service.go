// Package donation artan yemeklerin halka açık listesi ve yemek talepleri.
package donation

import (
	"errors"
	"strings"
	"unicode/utf8"

	"foodshare-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRequestNotFound = errors.New("talep bulunamadı")
	ErrAlreadyDecided  = errors.New("talep zaten yanıtlanmış")
	ErrInvalidStatus   = errors.New("geçersiz talep durumu")
	ErrInvalidInput    = errors.New("ad ve telefon zorunlu")
	ErrInputTooLong    = errors.New("ad veya telefon çok uzun")
)

// Sınırlar karakter sayısıdır, bayt değil (varchar ile aynı).
const (
	maxNameLen  = 100
	maxPhoneLen = 15
)

// NewRequestInput halka açık talep formu.
type NewRequestInput struct {
	Name  string `json:"name" form:"name"`
	Phone string `json:"phone" form:"phone"`
}

func (in NewRequestInput) normalize() (NewRequestInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.Phone == "" {
		return in, ErrInvalidInput
	}
	if utf8.RuneCountInString(in.Name) > maxNameLen || utf8.RuneCountInString(in.Phone) > maxPhoneLen {
		return in, ErrInputTooLong
	}
	return in, nil
}

// CreateRequest restorana "pending" durumunda yeni talep açar.
func CreateRequest(db *gorm.DB, restaurantID uint, in NewRequestInput) (*models.DonationRequest, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	req := models.DonationRequest{
		RestaurantID:   restaurantID,
		RequesterName:  in.Name,
		RequesterPhone: in.Phone,
		Status:         models.RequestPending,
	}
	if err := db.Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func GetRequest(db *gorm.DB, id uint) (*models.DonationRequest, error) {
	var req models.DonationRequest
	err := db.Preload("Restaurant").First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ownedRequest talebi sadece hem id hem de restoran eşleşiyorsa döner; başka restoranın
// talebi "bulunamadı" olarak görünür.
func ownedRequest(db *gorm.DB, id, ownerID uint) (*models.DonationRequest, error) {
	var req models.DonationRequest
	err := db.Where("id = ? AND restaurant_id = ?", id, ownerID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Decide bekleyen talebi kabul eder ya da reddeder. Yanıtlanmış talep tekrar değişmez.
// Dönen ilk değer talebin önceki durumudur.
func Decide(db *gorm.DB, id, ownerID uint, status models.RequestStatus) (models.RequestStatus, *models.DonationRequest, error) {
	if status != models.RequestAccepted && status != models.RequestRejected {
		return "", nil, ErrInvalidStatus
	}

	req, err := ownedRequest(db, id, ownerID)
	if err != nil {
		return "", nil, err
	}
	prev := req.Status

	res := db.Model(&models.DonationRequest{}).
		Where("id = ? AND restaurant_id = ? AND status = ?", id, ownerID, models.RequestPending).
		Update("status", status)
	if res.Error != nil {
		return "", nil, res.Error
	}
	if res.RowsAffected == 0 {
		return prev, nil, ErrAlreadyDecided
	}

	req.Status = status
	return prev, req, nil
}

// DeleteRequest restoran sahibinin kendi talebini siler (durumu ne olursa olsun).
func DeleteRequest(db *gorm.DB, id, ownerID uint) (*models.DonationRequest, error) {
	req, err := ownedRequest(db, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := db.Delete(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// DeleteAllRequests restorana gelen tüm talepleri siler, silinen sayıyı döner.
func DeleteAllRequests(db *gorm.DB, ownerID uint) (int64, error) {
	res := db.Where("restaurant_id = ?", ownerID).Delete(&models.DonationRequest{})
	return res.RowsAffected, res.Error
}

// ListForOwner restorana gelen talepler, en yeni önce.
func ListForOwner(db *gorm.DB, ownerID uint) ([]models.DonationRequest, error) {
	var reqs []models.DonationRequest
	err := db.Where("restaurant_id = ?", ownerID).Order("created_at DESC, id DESC").Find(&reqs).Error
	return reqs, err
}
