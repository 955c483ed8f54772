package forms

import "Dealership/models"

type OrderForm struct {
	FullName           string `json:"fullName" validate:"min=2"`
	Email              string `json:"email" validate:"email"`
	Phone              string `json:"phone" validate:"min=10"`
	Address            string `json:"address" validate:"min=5"`
	City               string `json:"city" validate:"min=2"`
	State              string `json:"state" validate:"min=2"`
	ZipCode            string `json:"zipCode" validate:"min=5"`
	DeliveryPreference string `json:"deliveryPreference" validate:"min=1"`
}

// NewOrderForm returns the initial form state.
func NewOrderForm() OrderForm {
	return OrderForm{DeliveryPreference: "pickup"}
}

func (OrderForm) messages() map[string]string {
	return map[string]string{
		"fullName":           "Full name is required",
		"email":              "Invalid email address",
		"phone":              "Valid phone number is required",
		"address":            "Address is required",
		"city":               "City is required",
		"state":              "State is required",
		"zipCode":            "Valid ZIP code is required",
		"deliveryPreference": "Delivery preference is required",
	}
}

// Order builds a pending order. total is the price quoted when the form
// was loaded.
func (f OrderForm) Order(carID, userID string, total float64) *models.Order {
	return &models.Order{
		CarID:              carID,
		UserID:             userID,
		FullName:           f.FullName,
		Email:              f.Email,
		Phone:              f.Phone,
		Address:            f.Address,
		City:               f.City,
		State:              f.State,
		ZipCode:            f.ZipCode,
		DeliveryPreference: f.DeliveryPreference,
		Status:             models.OrderStatusPending,
		TotalAmount:        total,
	}
}
