// Package steg hides byte payloads in the least-significant bits of RGB pixel
// channels. The order in which channels are visited is a permutation derived
// from a key, so extraction needs the same key that was used for embedding.
//
// The payload is framed with a 3-byte little-endian length header. Bits are
// written LSB-first, one per hiding spot, where a hiding spot is a single
// (x, y, channel) triple of the image.
package steg
