package steg

// Extract recovers a payload written by Embed with an equal State.
// It never modifies g.
//
// A HeaderError (ErrOversizedHeader) is the only sign of a wrong key. A
// recovered length that happens to fit yields garbage instead.
func Extract(g Grid, st *State) ([]byte, error) {
	n, err := spotCount(g)
	if err != nil {
		return nil, err
	}
	order, err := Permutation(n, st)
	if err != nil {
		return nil, err
	}
	if n < HeaderBits {
		return nil, &CapacityError{Needed: HeaderBits, Available: uint64(n)}
	}

	r := spotReader{g: g, order: order, width: g.Width()}

	var raw [HeaderSize]byte
	r.read(raw[:])
	h := ParseHeader(raw)

	if h.FrameBits() > uint64(n) {
		return nil, &HeaderError{Length: h.Length, Needed: h.FrameBits(), Available: uint64(n)}
	}

	payload := make([]byte, h.Length)
	r.read(payload)
	return payload, nil
}

// spotReader reads bytes LSB-first from consecutive permutation entries.
type spotReader struct {
	g     Grid
	order []uint32
	width int
	next  int
}

func (r *spotReader) read(dst []byte) {
	for i := range dst {
		var b byte
		for bit := 0; bit < 8; bit++ {
			x, y, c := locate(r.order[r.next], r.width)
			b |= (r.g.Channel(x, y, c) & 1) << bit
			r.next++
		}
		dst[i] = b
	}
}
