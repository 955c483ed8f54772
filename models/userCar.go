package models

// UserCar links a profile to a listing. Only the owner flag is ever written.
type UserCar struct {
	UserID  string `json:"userId" gorm:"primaryKey;size:36"`
	CarID   string `json:"carId" gorm:"primaryKey;size:36"`
	IsOwner bool   `json:"isOwner" gorm:"not null;default:false"`
}
