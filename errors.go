package samplesize

import "errors"

// Sentinel errors returned by constructors and calculators.
// Callers match them with errors.Is; messages are wrapped with the offending value.
var (
	// ErrConfidenceRange means the confidence level fell outside [0, 1].
	ErrConfidenceRange = errors.New("confidence must be between 0 and 1")

	// ErrConfidenceType means the confidence level was not a floating-point value.
	ErrConfidenceType = errors.New("confidence must be a float")

	ErrInvalidPopulationSize = errors.New("population size must be positive")
	ErrInvalidVariance       = errors.New("population variance must be positive")
	ErrInvalidMarginOfError  = errors.New("margin of error must be positive and finite")
	ErrInvalidProbability    = errors.New("success probability must be between 0 and 1")
	ErrNilPopulation         = errors.New("population parameters are required")
	ErrInvalidSampleSize     = errors.New("sample size must be within [0, population size]")

	// ErrUnsupportedMethod means no formula is registered for a sampling method.
	ErrUnsupportedMethod = errors.New("unsupported sampling method")
)
