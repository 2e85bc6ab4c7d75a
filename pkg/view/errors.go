package view

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnview/pkg/errcode"
)

// ErrorCode returns the code of a gn.Error somewhere in the chain of err,
// or errcode.UnknownError.
func ErrorCode(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return errcode.UnknownError
}

// UnsupportedFeatureError is returned before any DDL is issued when the
// backend lacks a required feature.
func UnsupportedFeatureError(f Feature, serverVersion int) error {
	msg := `The database server does not support <em>%s</em>

<em>How to fix:</em>
  1. Check the server version: <em>SHOW server_version</em>
  2. Materialized views need PostgreSQL 9.3 or newer
  3. Concurrent refresh needs PostgreSQL 9.4 or newer`
	vars := []any{string(f)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ViewUnsupportedFeatureError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s not supported by server version %d",
			fn.Name(), f, serverVersion),
	}
}

// ObjectNotFoundError is returned when a name is absent from the catalog.
func ObjectNotFoundError(n Name) error {
	msg := "Materialized view <em>%s</em> does not exist"
	vars := []any{n.String()}
	return &gn.Error{
		Code: errcode.ViewObjectNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("materialized view %s not found", n),
	}
}

// ConcurrentRefreshPreconditionError is returned when a populated
// materialized view has no unique index usable by a concurrent refresh.
func ConcurrentRefreshPreconditionError(n Name) error {
	msg := `Cannot refresh <em>%s</em> concurrently

<em>Concurrent refresh requires a unique index that:</em>
  - covers plain columns only
  - has no WHERE clause

<em>How to fix:</em>
  Create a unique index with no WHERE clause, for example
  <em>CREATE UNIQUE INDEX ON %s (id)</em>
  or refresh without <em>--concurrently</em>`
	vars := []any{n.String(), n.Sanitize()}
	return &gn.Error{
		Code: errcode.ViewConcurrentRefreshPreconditionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"%s has no unique index without a WHERE clause: "+
				"create a unique index with no WHERE clause "+
				"to refresh it concurrently", n),
	}
}

// InternalInconsistencyError is returned when dependency traversal finds a
// cycle, which the catalog is not able to represent.
func InternalInconsistencyError(target Name, path []Name) error {
	names := make([]string, len(path))
	for i, v := range path {
		names[i] = v.String()
	}
	cycle := strings.Join(names, " -> ")
	msg := `Dependency cycle detected while resolving <em>%s</em>: %s

This should never happen, please report the database version
and the objects involved.`
	vars := []any{target.String(), cycle}
	return &gn.Error{
		Code: errcode.ViewInternalInconsistencyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("dependency cycle: %s", cycle),
	}
}

// InvalidNameError is returned for identifiers that cannot be parsed.
func InvalidNameError(s string) error {
	msg := "Cannot use <em>%q</em> as a view name"
	vars := []any{s}
	return &gn.Error{
		Code: errcode.ViewInvalidNameError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid identifier %q", s),
	}
}

// EmptyDefinitionError is returned when a definition is blank after
// normalization.
func EmptyDefinitionError(n Name) error {
	msg := "Definition of <em>%s</em> is empty"
	vars := []any{n.String()}
	return &gn.Error{
		Code: errcode.ViewEmptyDefinitionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("empty definition for %s", n),
	}
}
