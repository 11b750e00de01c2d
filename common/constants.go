package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit scales world units (one tile) to screen pixels.
	PixelsPerUnit = 32

	// TickRate is the fixed physics rate in ticks per second.
	TickRate  = 50
	FixedStep = 1.0 / TickRate

	// Gravity is the physics-space gravity before per-body scaling. World space is y-up.
	Gravity = -9.81
)
