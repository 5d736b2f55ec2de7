package sbd

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidInput indicates the text is not valid UTF-8.
	ErrInvalidInput = errors.New("sbd: invalid input")

	// ErrInternalConsistency indicates the segments could not be restored
	// to the input. It signals a defect, not a property of the input.
	ErrInternalConsistency = errors.New("sbd: internal consistency check failed")

	// ErrDictionary indicates the abbreviation dictionary could not be built.
	ErrDictionary = errors.New("sbd: invalid dictionary")

	// ErrClosed indicates the Segmenter was used after Close.
	ErrClosed = errors.New("sbd: segmenter closed")
)
