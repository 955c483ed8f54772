package models

const TradeInStatusPending = "pending"

type TradeIn struct {
	Base
	CarID              string   `json:"carId" gorm:"size:36;not null;index"`
	UserID             string   `json:"userId" gorm:"size:36;not null;index"`
	Make               string   `json:"make" gorm:"not null"`
	Model              string   `json:"model" gorm:"not null"`
	Year               int      `json:"year" gorm:"not null"`
	Mileage            int      `json:"mileage" gorm:"not null"`
	Condition          string   `json:"condition" gorm:"not null"`
	EstimatedValue     float64  `json:"estimatedValue" gorm:"not null"`
	Location           string   `json:"location" gorm:"not null"`
	RegisteredOwner    string   `json:"registeredOwner" gorm:"not null"`
	ContactNumber      string   `json:"contactNumber" gorm:"not null"`
	PreferredVisitTime string   `json:"preferredVisitTime" gorm:"not null"`
	Description        string   `json:"description"`
	Images             []string `json:"images" gorm:"serializer:json;type:json"`
	Status             string   `json:"status" gorm:"not null"`
}

func (TradeIn) TableName() string {
	return "trade_ins"
}
