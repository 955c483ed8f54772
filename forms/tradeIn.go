package forms

import (
	"strconv"

	"Dealership/models"
)

var TradeInConditions = []string{"Excellent", "Good", "Fair", "Poor"}

type TradeInForm struct {
	Make               string   `json:"make" validate:"required"`
	Model              string   `json:"model" validate:"required"`
	Year               string   `json:"year" validate:"year"`
	Mileage            string   `json:"mileage" validate:"required,number"`
	Condition          string   `json:"condition" validate:"oneof=Excellent Good Fair Poor"`
	EstimatedValue     string   `json:"estimatedValue" validate:"required,numeric"`
	Location           string   `json:"location" validate:"required"`
	RegisteredOwner    string   `json:"registeredOwner" validate:"required"`
	ContactNumber      string   `json:"contactNumber" validate:"required"`
	PreferredVisitTime string   `json:"preferredVisitTime" validate:"required"`
	Description        string   `json:"description"`
	Images             []string `json:"images" validate:"min=1,max=5"`
}

// NewTradeInForm returns the initial form state.
func NewTradeInForm() TradeInForm {
	return TradeInForm{Condition: "Good", Images: []string{}}
}

func (TradeInForm) messages() map[string]string {
	return map[string]string{
		"make":                   "Make is required",
		"model":                  "Model is required",
		"year":                   "Must be a valid year",
		"mileage":                "Mileage is required",
		"mileage.number":         "Mileage must be a whole number",
		"condition":              "Condition must be one of Excellent, Good, Fair or Poor",
		"estimatedValue":         "Estimated value is required",
		"estimatedValue.numeric": "Estimated value must be a number",
		"location":               "Location is required",
		"registeredOwner":        "Registered owner name is required",
		"contactNumber":          "Contact number is required",
		"preferredVisitTime":     "Preferred visit time is required",
		"images.min":             "At least one image is required",
		"images.max":             "At most 5 images are allowed",
	}
}

func (f TradeInForm) TradeIn(carID, userID string, images []string) *models.TradeIn {
	year, _ := strconv.Atoi(f.Year)
	mileage, _ := strconv.Atoi(f.Mileage)
	value, _ := strconv.ParseFloat(f.EstimatedValue, 64)

	return &models.TradeIn{
		CarID:              carID,
		UserID:             userID,
		Make:               f.Make,
		Model:              f.Model,
		Year:               year,
		Mileage:            mileage,
		Condition:          f.Condition,
		EstimatedValue:     value,
		Location:           f.Location,
		RegisteredOwner:    f.RegisteredOwner,
		ContactNumber:      f.ContactNumber,
		PreferredVisitTime: f.PreferredVisitTime,
		Description:        f.Description,
		Images:             images,
		Status:             models.TradeInStatusPending,
	}
}
