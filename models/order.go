package models

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

type Order struct {
	Base
	CarID              string  `json:"carId" gorm:"size:36;not null;index"`
	Car                *Car    `json:"car,omitempty" gorm:"foreignKey:CarID"`
	UserID             string  `json:"userId" gorm:"size:36;not null;index"`
	FullName           string  `json:"fullName" gorm:"not null"`
	Email              string  `json:"email" gorm:"not null"`
	Phone              string  `json:"phone" gorm:"not null"`
	Address            string  `json:"address" gorm:"not null"`
	City               string  `json:"city" gorm:"not null"`
	State              string  `json:"state" gorm:"not null"`
	ZipCode            string  `json:"zipCode" gorm:"not null"`
	DeliveryPreference string  `json:"deliveryPreference" gorm:"not null"`
	Status             string  `json:"status" gorm:"not null"`
	TotalAmount        float64 `json:"totalAmount" gorm:"not null"`
}
