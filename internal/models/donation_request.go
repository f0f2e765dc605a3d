package models

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// DonationRequest: ihtiyaç sahibinin bir restorandan artan yemek talebi.
// pending -> accepted | rejected (bir kez), ya da restoran sahibi tarafından silinir.
type DonationRequest struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	RestaurantID   uint          `gorm:"index;not null" json:"restaurant_id"`
	Restaurant     User          `json:"-"`
	RequesterName  string        `gorm:"size:100;not null" json:"requester_name"`
	RequesterPhone string        `gorm:"size:15;not null" json:"requester_phone"`
	Status         RequestStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt      time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
