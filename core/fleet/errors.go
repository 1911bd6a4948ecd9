package fleet

import "errors"

var (
	// ErrSameDepot is returned when an order would pick up and drop off at the same depot.
	ErrSameDepot = errors.New("pickup and destination depot are the same")
	// ErrAlreadyDelivered is returned when a delivered order is advanced or asked for a target.
	ErrAlreadyDelivered = errors.New("order already delivered")
	// ErrNotPaused is returned when LoadingComplete is called on a vehicle that is not docked.
	ErrNotPaused = errors.New("vehicle is not paused at a dock")
	// ErrHoldFull is returned when a picked up order finds no empty cargo slot.
	ErrHoldFull = errors.New("cargo hold is full")
	// ErrNotInHold is returned when a delivered order is missing from the cargo hold.
	ErrNotInHold = errors.New("order not in cargo hold")
	// ErrUnknownClass is returned for a vehicle class without a profile.
	ErrUnknownClass = errors.New("unknown vehicle class")
	// ErrInvalidDocks is returned when a depot is created with fewer than one dock.
	ErrInvalidDocks = errors.New("dock count must be at least 1")
)
