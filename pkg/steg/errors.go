package steg

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHidingSpots is returned for a grid without any pixels.
	ErrNoHidingSpots = errors.New("image has no hiding spots")
	// ErrPayloadTooLarge is returned when a payload exceeds MaxPayload.
	ErrPayloadTooLarge = errors.New("message exceeds 16 MiB addressable length")
	// ErrOversizedHeader is returned when the recovered length cannot fit in
	// the image. It usually means a wrong key or an image without a payload.
	ErrOversizedHeader = errors.New("extracted message length does not fit into this image")
	// ErrImageTooLarge is returned when the hiding spot count overflows 32 bits.
	ErrImageTooLarge = errors.New("image has too many hiding spots")
)

// CapacityError reports that a frame needs more hiding spots than the image has.
// No pixel is modified when it is returned.
type CapacityError struct {
	Needed    uint64
	Available uint64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("message is too large: can't hide %d bits into %d hiding spots", e.Needed, e.Available)
}

// HeaderError carries the details of an ErrOversizedHeader failure.
type HeaderError struct {
	Length    uint32
	Needed    uint64
	Available uint64
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%v (length %d needs %d bits, image has %d); did you use the correct key?",
		ErrOversizedHeader, e.Length, e.Needed, e.Available)
}

func (e *HeaderError) Unwrap() error {
	return ErrOversizedHeader
}
