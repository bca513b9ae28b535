package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for different data types
const (
	movieRowPrefix    = "movrow:"
	movieVectorPrefix = "movvec:"
	manifestKey       = "catman"
)

// makePositionKey generates a key for a row position under prefix.
// Format: prefix + 8-byte big-endian position, so keys iterate in row order.
func makePositionKey(prefix string, position int) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(position))
	return buf
}

// makeMovieRowKey generates a key for the catalog row at position.
func makeMovieRowKey(position int) []byte {
	return makePositionKey(movieRowPrefix, position)
}

// makeMovieVectorKey generates a key for the vector at position.
func makeMovieVectorKey(position int) []byte {
	return makePositionKey(movieVectorPrefix, position)
}

// parsePositionKey extracts the row position from a key under prefix.
func parsePositionKey(prefix string, key []byte) (int, error) {
	if len(key) != len(prefix)+8 || string(key[:len(prefix)]) != prefix {
		return 0, fmt.Errorf("malformed key %q for prefix %q", key, prefix)
	}
	return int(binary.BigEndian.Uint64(key[len(prefix):])), nil
}
