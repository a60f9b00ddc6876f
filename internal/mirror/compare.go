package mirror

import (
	"os"

	"github.com/zeebo/xxh3"
)

// equalFiles reports whether two files have identical content. A size
// mismatch short-circuits; otherwise both files are content-hashed.
func equalFiles(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if ai.Size() != bi.Size() {
		return false, nil
	}

	ha, err := hashFile(a)
	if err != nil {
		return false, err
	}
	hb, err := hashFile(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}

func hashFile(path string) (xxh3.Uint128, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return xxh3.Uint128{}, err
	}
	return xxh3.Hash128(data), nil
}
