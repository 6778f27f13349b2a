package storage

import "errors"

// ErrInvalidSpan is returned when a recording's end time is not strictly after its start time.
var ErrInvalidSpan = errors.New("end time must be greater than start time")

// ErrAlreadyEnded is returned when closing a recording whose id has already been ended.
var ErrAlreadyEnded = errors.New("recording already ended")

// ErrNotFound is returned when referencing a participant that has never been created.
var ErrNotFound = errors.New("participant not found")

// ErrInvalidAmount is returned for a non-positive withdrawal amount.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInsufficientFunds is returned when a withdrawal exceeds the participant's balance.
var ErrInsufficientFunds = errors.New("insufficient funds")
