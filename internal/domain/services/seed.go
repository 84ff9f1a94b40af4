package services

import (
	"github.com/swiftex-sim/swiftex/internal/domain/graph"
	"github.com/swiftex-sim/swiftex/internal/domain/vo"
)

// FleetSize is the fixed fleet length the spec's contract names (spec §6).
const FleetSize = 5

// SeedNetwork populates g with the default city/road network (spec §9).
func SeedNetwork(g *graph.Graph) error {
	cities := []vo.City{
		vo.MustNewCity(1, "Lahore"),
		vo.MustNewCity(2, "Islamabad"),
		vo.MustNewCity(3, "Karachi"),
		vo.MustNewCity(4, "Rawalpindi"),
		vo.MustNewCity(5, "Faisalabad"),
		vo.MustNewCity(6, "Multan"),
		vo.MustNewCity(7, "Peshawar"),
		vo.MustNewCity(8, "Quetta"),
		vo.MustNewCity(9, "Sialkot"),
		vo.MustNewCity(10, "Gujranwala"),
	}
	for _, c := range cities {
		if err := g.AddCity(c); err != nil {
			return err
		}
	}

	roads := [][3]int{
		{1, 2, 375},
		{2, 4, 20},
		{1, 10, 70},
		{10, 9, 55},
		{1, 5, 180},
		{5, 6, 250},
		{6, 3, 900},
		{6, 8, 650},
		{3, 8, 690},
		{2, 7, 190},
	}
	for _, r := range roads {
		if err := g.AddRoad(r[0], r[1], r[2]); err != nil {
			return err
		}
	}

	return nil
}

// SeedFleet returns the default fleet in dispatch-preference order: small
// vehicles first (spec §9, §4.4).
func SeedFleet() []*vo.Rider {
	return []*vo.Rider{
		vo.MustNewRider(1, "Bike-1", "Bike", 50),
		vo.MustNewRider(2, "Bike-2", "Bike", 50),
		vo.MustNewRider(3, "Van-1", "Van", 200),
		vo.MustNewRider(4, "Van-2", "Van", 200),
		vo.MustNewRider(5, "Truck-1", "Truck", 1000),
	}
}
