package sim

// ModuleBuilderOption is a functional option for configuring a simulation
// module during construction.
type ModuleBuilderOption func(*module)

// WithMaxEntities sets the slot capacity of the shared memory block.
// Panics if capacity is not positive.
//
// Parameters:
//   - capacity: the maximum number of entity slots
//
// Returns:
//   - ModuleBuilderOption: functional option to set the capacity
func WithMaxEntities(capacity int32) ModuleBuilderOption {
	if capacity <= 0 {
		panic("sim: max entities must be positive")
	}
	return func(m *module) {
		m.maxEntities = capacity
	}
}

// WithTuning sets the simulation parameters directly.
//
// Parameters:
//   - tuning: the parameters to use
//
// Returns:
//   - ModuleBuilderOption: functional option to set the tuning
func WithTuning(tuning Tuning) ModuleBuilderOption {
	return func(m *module) {
		m.tuning = tuning
	}
}

// WithTuningFile loads simulation parameters from a YAML file, layered over
// the defaults. Panics if the file exists but cannot be parsed; a missing
// file keeps the defaults.
//
// Parameters:
//   - path: the YAML file path
//
// Returns:
//   - ModuleBuilderOption: functional option to load the tuning
func WithTuningFile(path string) ModuleBuilderOption {
	tuning, err := LoadTuning(path)
	if err != nil {
		panic(err)
	}
	return func(m *module) {
		m.tuning = tuning
	}
}
