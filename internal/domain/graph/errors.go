package graph

import "errors"

var (
	ErrCityNotPresent   = errors.New("city is not present in the network")
	ErrCityAlreadyExists = errors.New("city already registered")
	ErrRoadAlreadyExists = errors.New("road already exists between these cities")
	ErrNoSuchRoad        = errors.New("no direct road between these cities")
	ErrNoPath            = errors.New("no path exists between source and destination")
)
