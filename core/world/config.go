package world

import (
	"fmt"

	"github.com/kilianp07/fleetsim/core/factory"
	"github.com/kilianp07/fleetsim/core/fleet"
)

// Config describes the world generated for one run.
type Config struct {
	Small            int                  `json:"small"`
	Medium           int                  `json:"medium"`
	Large            int                  `json:"large"`
	OrdersPerVehicle int                  `json:"orders_per_vehicle"`
	Depots           int                  `json:"depots"`
	Width            float64              `json:"width"`
	Height           float64              `json:"height"`
	Seed             int64                `json:"seed"`
	Router           factory.ModuleConfig `json:"router"`
}

// SetDefaults fills unset fields. Vehicle counts are only defaulted when all
// three are zero.
func (c *Config) SetDefaults() {
	if c.Small == 0 && c.Medium == 0 && c.Large == 0 {
		c.Small, c.Medium, c.Large = 2, 2, 2
	}
	if c.OrdersPerVehicle == 0 {
		c.OrdersPerVehicle = 4
	}
	if c.Depots == 0 {
		c.Depots = 5
	}
	if c.Width == 0 {
		c.Width = 800
	}
	if c.Height == 0 {
		c.Height = 600
	}
	if c.Router.Type == "" {
		c.Router.Type = "sequential"
	}
}

// Validate rejects worlds that cannot be built.
func (c Config) Validate() error {
	if c.Small < 0 || c.Medium < 0 || c.Large < 0 {
		return fmt.Errorf("vehicle counts must not be negative")
	}
	if c.Vehicles() < 1 {
		return fmt.Errorf("at least one vehicle is required")
	}
	if c.Depots < 2 {
		return fmt.Errorf("at least two depots are required, got %d", c.Depots)
	}
	if c.OrdersPerVehicle < 1 {
		return fmt.Errorf("orders_per_vehicle must be positive")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive")
	}
	return nil
}

// Vehicles is the total fleet size.
func (c Config) Vehicles() int { return c.Small + c.Medium + c.Large }

// Counts returns the number of vehicles per class.
func (c Config) Counts() map[fleet.Class]int {
	return map[fleet.Class]int{fleet.Small: c.Small, fleet.Medium: c.Medium, fleet.Large: c.Large}
}

// Capacity is the fleet's total number of cargo slots.
func (c Config) Capacity() int {
	n := 0
	for class, count := range c.Counts() {
		p, err := fleet.ProfileOf(class)
		if err != nil {
			continue
		}
		n += count * p.Capacity
	}
	return n
}
