package mosaic

// Config holds engine-wide tunables. Set fields before calling
// Builder.Build; nothing in mosaic reads environment variables or
// config files.
var Config config = config{
	InitialColumnCapacity: 8,
	MaxConcurrentSystems:  0,
}

type config struct {
	// InitialColumnCapacity is the capacity hint used when a table's
	// columns are allocated for the first time.
	InitialColumnCapacity int

	// MaxConcurrentSystems bounds how many systems a single stage's
	// fork-join region may run at once. Zero means unbounded (every
	// eligible system in a batch is dispatched at once).
	MaxConcurrentSystems int

	// Verbose turns on log.Printf diagnostics at flush boundaries.
	Verbose bool
}

// SetVerbose toggles flush-boundary diagnostic logging.
func (c *config) SetVerbose(v bool) {
	c.Verbose = v
}

// SetMaxConcurrentSystems bounds per-stage fork-join concurrency.
func (c *config) SetMaxConcurrentSystems(n int) {
	c.MaxConcurrentSystems = n
}
