// Package location implements the cascading country, state and city selector.
package location

import (
	"fmt"
	"strings"

	"github.com/pavitra93/go-hr-admin-panel/shared/models"
)

// Field names a selector input
type Field string

const (
	FieldCountry Field = "country_id"
	FieldState   Field = "state_id"
	FieldCity    Field = "city_id"
)

// Selection is the current value of the three selector inputs. Nil means empty.
type Selection struct {
	CountryID *uint `json:"country_id"`
	StateID   *uint `json:"state_id"`
	CityID    *uint `json:"city_id"`
}

// Option is one entry of a selector's option list
type Option struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Apply sets field to value and clears every dependent field when the value changed.
func (s Selection) Apply(field Field, value *uint) (Selection, error) {
	next := s
	switch field {
	case FieldCountry:
		if !sameID(s.CountryID, value) {
			next.StateID = nil
			next.CityID = nil
		}
		next.CountryID = value
	case FieldState:
		if !sameID(s.StateID, value) {
			next.CityID = nil
		}
		next.StateID = value
	case FieldCity:
		next.CityID = value
	default:
		return s, fmt.Errorf("unknown location field %q", field)
	}
	return next, nil
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// FilterStates returns the states of countryID. A nil country has no states.
func FilterStates(states []models.State, countryID *uint) []models.State {
	result := make([]models.State, 0)
	if countryID == nil {
		return result
	}
	for _, s := range states {
		if s.CountryID == *countryID {
			result = append(result, s)
		}
	}
	return result
}

// FilterCities returns the cities of stateID. A nil state has no cities.
func FilterCities(cities []models.City, stateID *uint) []models.City {
	result := make([]models.City, 0)
	if stateID == nil {
		return result
	}
	for _, c := range cities {
		if c.StateID == *stateID {
			result = append(result, c)
		}
	}
	return result
}

// SearchOptions keeps the options whose name contains term, ignoring case
func SearchOptions(options []Option, term string) []Option {
	term = strings.TrimSpace(term)
	if term == "" {
		return options
	}

	needle := strings.ToLower(term)
	result := make([]Option, 0, len(options))
	for _, o := range options {
		if strings.Contains(strings.ToLower(o.Name), needle) {
			result = append(result, o)
		}
	}
	return result
}

func CountryOptions(countries []models.Country) []Option {
	options := make([]Option, 0, len(countries))
	for _, c := range countries {
		options = append(options, Option{ID: c.ID, Name: c.Name})
	}
	return options
}

func StateOptions(states []models.State) []Option {
	options := make([]Option, 0, len(states))
	for _, s := range states {
		options = append(options, Option{ID: s.ID, Name: s.Name})
	}
	return options
}

func CityOptions(cities []models.City) []Option {
	options := make([]Option, 0, len(cities))
	for _, c := range cities {
		options = append(options, Option{ID: c.ID, Name: c.Name})
	}
	return options
}
