package fleet

import "fmt"

// Class tags a vehicle size.
type Class string

const (
	Small  Class = "small"
	Medium Class = "medium"
	Large  Class = "large"
)

// Profile holds the parameters that distinguish vehicle classes.
type Profile struct {
	Capacity int
	Speed    float64
}

var profiles = map[Class]Profile{
	Small:  {Capacity: 1, Speed: 9},
	Medium: {Capacity: 2, Speed: 6},
	Large:  {Capacity: 3, Speed: 3},
}

// Classes lists the vehicle classes in build order.
func Classes() []Class { return []Class{Small, Medium, Large} }

// ProfileOf returns the capacity and speed of c.
func ProfileOf(c Class) (Profile, error) {
	p, ok := profiles[c]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownClass, string(c))
	}
	return p, nil
}
