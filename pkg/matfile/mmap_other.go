//go:build !unix

package matfile

import (
	"errors"
	"os"
)

var errNoMmap = errors.New("matfile: mmap not supported on this platform")

func mmapFile(_ *os.File, _ int) ([]byte, error) {
	return nil, errNoMmap
}

func munmap(_ []byte) error {
	return nil
}
