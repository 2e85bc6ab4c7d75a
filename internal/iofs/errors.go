package iofs

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnview/pkg/errcode"
)

// CreateDirError is returned when a GNview config or log directory
// cannot be created.
func CreateDirError(dir string, err error) error {
	msg := `Cannot create GNview directory <em>%s</em>

<em>How to fix:</em>
  Check permissions of the home directory or remove a file with
  the same name`
	vars := []any{dir}
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("mkdir %s: %w", dir, err),
	}
}

// CopyFileError is returned when the default config.yaml cannot be
// written.
func CopyFileError(path string, err error) error {
	msg := "Cannot write default GNview config to <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("write config %s: %w", path, err),
	}
}

// ReadFileError is returned when a config or definition file cannot
// be read.
func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("read %s: %w", path, err),
	}
}
