package iodefinition

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnview/pkg/errcode"
)

// NotFoundError is returned when a definition file does not exist.
func NotFoundError(path string) error {
	msg := `Cannot find view definition <em>%s</em>

<em>How to fix:</em>
  Check the <em>--version</em> flag and the definitions directory
  (<em>view.definitions_dir</em> in the config file)`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.DefinitionNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("definition file %s not found", path),
	}
}

// EmptyError is returned when a definition file has no query.
func EmptyError(path string) error {
	msg := "View definition <em>%s</em> is empty"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.DefinitionEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("definition file %s is empty", path),
	}
}

// VersionError is returned for negative versions.
func VersionError(name string, version int) error {
	msg := "Version <em>%d</em> of <em>%s</em> is invalid"
	vars := []any{version, name}
	return &gn.Error{
		Code: errcode.DefinitionVersionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid version %d of %s", version, name),
	}
}
