package srs

// Params defines the configurable constants of the SM-2 algorithm.
// The defaults reproduce the classic algorithm exactly; tests and
// experiments may tune them through NewServiceWithParams.
type Params struct {
	// InitialEaseFactor is assigned to a card when it first enters the schedule.
	InitialEaseFactor float64

	// MinEaseFactor is the floor the ease factor is clamped to after every
	// review. There is deliberately no ceiling.
	MinEaseFactor float64

	// FirstInterval is the interval in days after the first successful review.
	FirstInterval int

	// SecondInterval is the interval in days after the second consecutive
	// successful review. From the third onward the interval grows by the
	// ease factor.
	SecondInterval int

	// FailureInterval is the interval in days after any failed review.
	FailureInterval int
}

// NewDefaultParams returns the classic SM-2 constants.
func NewDefaultParams() *Params {
	return &Params{
		InitialEaseFactor: 2.5,
		MinEaseFactor:     1.3,
		FirstInterval:     1,
		SecondInterval:    6,
		FailureInterval:   1,
	}
}
