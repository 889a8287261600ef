package physics

// BridgeBuilderOption is a functional option for configuring a Bridge during
// construction.
type BridgeBuilderOption func(*bridge)

// WithInitialSlot sets the first slot identifier the bridge will assign.
// Useful when multiple bridges share one module and must not collide.
// Panics if slot is negative.
//
// Parameters:
//   - slot: the first slot identifier
//
// Returns:
//   - BridgeBuilderOption: functional option to set the starting slot
func WithInitialSlot(slot int32) BridgeBuilderOption {
	if slot < 0 {
		panic("physics: initial slot must not be negative")
	}
	return func(b *bridge) {
		b.nextSlot = slot
	}
}
