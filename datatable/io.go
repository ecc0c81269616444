package datatable

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// openFile opens path for reading, resolving it to an absolute path first
// the way file.Load does in the teacher repository.
func openFile(path string) (*os.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "filepath.Abs")
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "os.Open")
	}
	return f, nil
}
