package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError

	// View lifecycle errors
	ViewUnsupportedFeatureError
	ViewObjectNotFoundError
	ViewConcurrentRefreshPreconditionError
	ViewInternalInconsistencyError
	ViewInvalidNameError
	ViewEmptyDefinitionError

	// Definition file errors
	DefinitionNotFoundError
	DefinitionEmptyError
	DefinitionVersionError
)
