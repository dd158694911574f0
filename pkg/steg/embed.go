package steg

// Embed frames payload and writes it into g in the order given by st.
// Framing errors are reported before the capacity check.
func Embed(payload []byte, g Grid, st *State) error {
	frame, err := Frame(payload)
	if err != nil {
		return err
	}
	return EmbedFrame(frame, g, st)
}

// EmbedFrame writes every bit of frame, LSB first, into the lowest bit of the
// hiding spots visited by the permutation for st. Nothing is written unless
// the whole frame fits.
func EmbedFrame(frame []byte, g Grid, st *State) error {
	n, err := spotCount(g)
	if err != nil {
		return err
	}
	needed := uint64(len(frame)) * 8
	if needed > uint64(n) {
		return &CapacityError{Needed: needed, Available: uint64(n)}
	}

	order, err := Permutation(n, st)
	if err != nil {
		return err
	}

	width := g.Width()
	next := 0
	for _, b := range frame {
		for bit := 0; bit < 8; bit++ {
			x, y, c := locate(order[next], width)
			v := g.Channel(x, y, c)
			g.SetChannel(x, y, c, v&0xfe|(b>>bit)&1)
			next++
		}
	}
	return nil
}
