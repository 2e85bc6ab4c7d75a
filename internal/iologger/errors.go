package iologger

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnview/pkg/errcode"
)

// CreateLogFileError is returned when gnview.log cannot be opened for
// appending.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot open GNview log <em>%s</em>

<em>How to fix:</em>
  Set <em>log.destination</em> to stderr in the config file or
  GNVIEW_LOG_DESTINATION=stderr`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("open log %s: %w", path, err),
	}
}
