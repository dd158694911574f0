package steg

// Hide embeds payload into g using a generator seeded from key.
func Hide(key, payload []byte, g Grid) error {
	st := Seed(key)
	return Embed(payload, g, &st)
}

// Reveal extracts the payload hidden in g with key.
func Reveal(key []byte, g Grid) ([]byte, error) {
	st := Seed(key)
	return Extract(g, &st)
}
