package iogate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnview/pkg/errcode"
)

// VersionParseError is returned when server_version_num is not a number.
func VersionParseError(s string, err error) error {
	msg := "Cannot read the database server version <em>%s</em>"
	vars := []any{s}
	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse server_version_num %q: %w", s, err),
	}
}
