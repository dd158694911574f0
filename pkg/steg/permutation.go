// permutation.go — key-driven ordering of hiding spots.
package steg

// Permutation returns the visiting order of n hiding spots. It starts from the
// identity and, for every position i in order, swaps it with position
// Next() mod n. The swap target ranges over all of [0, n) on every step, not
// the shrinking range of a Fisher-Yates shuffle; existing stego images depend
// on exactly this order.
func Permutation(n uint32, st *State) ([]uint32, error) {
	if n == 0 {
		return nil, ErrNoHidingSpots
	}

	v := make([]uint32, n)
	for i := range v {
		v[i] = uint32(i)
	}
	for i := range v {
		j := st.Next() % uint64(n)
		v[i], v[j] = v[j], v[i]
	}
	return v, nil
}
