package bench

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func createFile(path string) (*os.File, error) {
	if d := filepath.Dir(path); d != "." {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
