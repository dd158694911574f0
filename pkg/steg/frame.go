// frame.go — length-prefixed payload framing.
package steg

import "fmt"

const (
	// HeaderSize is the size of the length header in bytes.
	HeaderSize = 3
	// HeaderBits is the number of hiding spots the header occupies.
	HeaderBits = HeaderSize * 8
	// MaxPayload is the largest payload length the header can describe.
	MaxPayload = 1<<24 - 1
)

// Header is the frame header: the payload length in bytes.
type Header struct {
	Length uint32
}

// ParseHeader decodes a little-endian 3-byte header.
func ParseHeader(b [HeaderSize]byte) Header {
	return Header{Length: uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16}
}

// Bytes returns the little-endian wire form of h.
func (h Header) Bytes() [HeaderSize]byte {
	return [HeaderSize]byte{
		byte(h.Length),
		byte(h.Length >> 8),
		byte(h.Length >> 16),
	}
}

// FrameBits is the number of hiding spots consumed by the frame h describes.
func (h Header) FrameBits() uint64 {
	return HeaderBits + uint64(h.Length)*8
}

// Frame prefixes payload with its length header.
func Frame(payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	h := Header{Length: uint32(len(payload))}.Bytes()
	frame := make([]byte, 0, HeaderSize+len(payload))
	frame = append(frame, h[:]...)
	return append(frame, payload...), nil
}
