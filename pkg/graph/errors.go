package graph

import "errors"

var (
	ErrSelfLoop      = errors.New("road cannot connect a city to itself")
	ErrDuplicateEdge = errors.New("road already exists between these cities")
	ErrInvalidWeight = errors.New("weight must be a positive finite number")
	ErrUnknownEntity = errors.New("unknown city or road")
	ErrDuplicateID   = errors.New("identifier already in use")
	ErrEmptyName     = errors.New("city name is empty")
	ErrInvalidID     = errors.New("identifier must be positive")
)
