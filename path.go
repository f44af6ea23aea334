package grid

import (
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// expandPath resolves a leading ~ to the user's home directory
func expandPath(fname string) (string, error) {
	path, err := homedir.Expand(fname)
	if err != nil {
		return "", errors.Wrapf(err, "expanding path %s", fname)
	}
	return path, nil
}
