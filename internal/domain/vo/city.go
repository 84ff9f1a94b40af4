package vo

import (
	"errors"
	"fmt"
)

// MaxCities bounds the city network size (spec §9).
const MaxCities = 100

var (
	ErrInvalidCityID   = errors.New("city id must be positive")
	ErrCityNameEmpty   = errors.New("city name must not be empty")
	ErrTooManyCities   = fmt.Errorf("city network exceeds %d cities", MaxCities)
)

// City is a node in the road network.
type City struct {
	id   int
	name string
}

// NewCity validates and constructs a City.
func NewCity(id int, name string) (City, error) {
	if id <= 0 {
		return City{}, fmt.Errorf("%w: got %d", ErrInvalidCityID, id)
	}
	if name == "" {
		return City{}, ErrCityNameEmpty
	}

	return City{id: id, name: name}, nil
}

// MustNewCity panics on invalid input; used for seed data and tests.
func MustNewCity(id int, name string) City {
	c, err := NewCity(id, name)
	if err != nil {
		panic(err)
	}

	return c
}

func (c City) ID() int {
	return c.id
}

func (c City) Name() string {
	return c.name
}

func (c City) String() string {
	return c.name
}
