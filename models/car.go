package models

import "time"

type Car struct {
	Base
	Make         string    `json:"make" gorm:"not null;index"`
	Model        string    `json:"model" gorm:"not null"`
	Year         int       `json:"year" gorm:"not null"`
	Price        float64   `json:"price" gorm:"not null;index"`
	Mileage      int       `json:"mileage" gorm:"not null"`
	FuelType     string    `json:"fuelType" gorm:"not null"`
	Transmission string    `json:"transmission"`
	BodyType     string    `json:"bodyType" gorm:"not null;index"`
	Color        string    `json:"color"`
	ImageURL     string    `json:"imageUrl"`
	Images       []string  `json:"images" gorm:"serializer:json;type:json"`
	Features     []string  `json:"features" gorm:"serializer:json;type:json"`
	Condition    string    `json:"condition"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Gallery returns the images to render, falling back to the primary image
// for rows written before the images column existed.
func (c *Car) Gallery() []string {
	if len(c.Images) > 0 {
		return c.Images
	}
	if c.ImageURL != "" {
		return []string{c.ImageURL}
	}
	return []string{}
}
