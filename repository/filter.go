package repository

import "gorm.io/gorm"

// Comparison operators a catalog predicate may use.
const (
	OpEqual        = "="
	OpGreaterEqual = ">="
	OpLessEqual    = "<="
)

// Predicate is one column comparison applied to the cars table. Column is
// always one of the constants below, never user input.
type Predicate struct {
	Column string
	Op     string
	Value  interface{}
}

// CarFilter holds the optional catalog filters. A nil field is absent and
// contributes no predicate at all.
type CarFilter struct {
	Make         *string
	BodyType     *string
	MinPrice     *float64
	MaxPrice     *float64
	FuelType     *string
	Transmission *string
}

// Predicates returns exactly one predicate per present filter, in a stable
// order.
func (f CarFilter) Predicates() []Predicate {
	var predicates []Predicate
	if f.Make != nil {
		predicates = append(predicates, Predicate{Column: "make", Op: OpEqual, Value: *f.Make})
	}
	if f.BodyType != nil {
		predicates = append(predicates, Predicate{Column: "body_type", Op: OpEqual, Value: *f.BodyType})
	}
	if f.MinPrice != nil {
		predicates = append(predicates, Predicate{Column: "price", Op: OpGreaterEqual, Value: *f.MinPrice})
	}
	if f.MaxPrice != nil {
		predicates = append(predicates, Predicate{Column: "price", Op: OpLessEqual, Value: *f.MaxPrice})
	}
	if f.FuelType != nil {
		predicates = append(predicates, Predicate{Column: "fuel_type", Op: OpEqual, Value: *f.FuelType})
	}
	if f.Transmission != nil {
		predicates = append(predicates, Predicate{Column: "transmission", Op: OpEqual, Value: *f.Transmission})
	}
	return predicates
}

func (f CarFilter) apply(query *gorm.DB) *gorm.DB {
	for _, p := range f.Predicates() {
		query = query.Where(p.Column+" "+p.Op+" ?", p.Value)
	}
	return query
}
