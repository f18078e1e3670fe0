package domain

import "errors"

// ErrInvalidMatrix is returned when the transition table is malformed.
var ErrInvalidMatrix = errors.New("invalid transition matrix")

// ErrSelectionExhausted signals that no legal token was found within the retry budget.
// It is consumed by the dataset loops and never surfaced to callers.
var ErrSelectionExhausted = errors.New("selection retry budget exhausted")

// ErrAttemptsExhausted is returned when a dataset loop hits its configured attempt cap.
var ErrAttemptsExhausted = errors.New("candidate attempts exhausted")

// ErrInvalidArgument is returned for non-positive counts or lengths.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrDatasetNotFound is returned when a sink has no rows stored for a set.
var ErrDatasetNotFound = errors.New("dataset not found")
