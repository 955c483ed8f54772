package forms

import (
	"strconv"
	"strings"

	"Dealership/models"
)

const MaxImages = 5

type CarForm struct {
	Make         string   `json:"make" validate:"required"`
	Model        string   `json:"model" validate:"required"`
	Year         string   `json:"year" validate:"year"`
	Price        string   `json:"price" validate:"required,numeric"`
	Mileage      string   `json:"mileage" validate:"required,number"`
	FuelType     string   `json:"fuelType" validate:"required"`
	Transmission string   `json:"transmission" validate:"required"`
	BodyType     string   `json:"bodyType" validate:"required"`
	Color        string   `json:"color" validate:"required"`
	Features     string   `json:"features" validate:"required"`
	Images       []string `json:"images" validate:"min=1,max=5"`
}

func (CarForm) messages() map[string]string {
	return map[string]string{
		"make":           "Make is required",
		"model":          "Model is required",
		"year":           "Must be a valid year",
		"price":          "Price is required",
		"price.numeric":  "Price must be a number",
		"mileage":        "Mileage is required",
		"mileage.number": "Mileage must be a whole number",
		"fuelType":       "Fuel type is required",
		"transmission":   "Transmission is required",
		"bodyType":       "Body type is required",
		"color":          "Color is required",
		"features":       "Features are required",
		"images.min":     "At least one image is required",
		"images.max":     "At most 5 images are allowed",
	}
}

// CarFormFrom fills the edit form from a stored listing.
func CarFormFrom(car *models.Car) CarForm {
	return CarForm{
		Make:         car.Make,
		Model:        car.Model,
		Year:         strconv.Itoa(car.Year),
		Price:        strconv.FormatFloat(car.Price, 'f', -1, 64),
		Mileage:      strconv.Itoa(car.Mileage),
		FuelType:     car.FuelType,
		Transmission: car.Transmission,
		BodyType:     car.BodyType,
		Color:        car.Color,
		Features:     strings.Join(car.Features, ", "),
		Images:       car.Gallery(),
	}
}

// Car builds the listing row from a validated form. images are the
// resolved public URLs; the first one becomes the primary image.
func (f CarForm) Car(images []string) *models.Car {
	year, _ := strconv.Atoi(f.Year)
	price, _ := strconv.ParseFloat(f.Price, 64)
	mileage, _ := strconv.Atoi(f.Mileage)

	car := &models.Car{
		Make:         strings.TrimSpace(f.Make),
		Model:        strings.TrimSpace(f.Model),
		Year:         year,
		Price:        price,
		Mileage:      mileage,
		FuelType:     f.FuelType,
		Transmission: f.Transmission,
		BodyType:     f.BodyType,
		Color:        f.Color,
		Images:       images,
		Features:     SplitFeatures(f.Features),
	}
	if len(images) > 0 {
		car.ImageURL = images[0]
	}
	return car
}

// SplitFeatures splits a comma separated list, trimming every entry and
// dropping empty ones.
func SplitFeatures(features string) []string {
	list := []string{}
	for _, feature := range strings.Split(features, ",") {
		if feature = strings.TrimSpace(feature); feature != "" {
			list = append(list, feature)
		}
	}
	return list
}
