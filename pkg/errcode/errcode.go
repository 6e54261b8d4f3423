// Package errcode registers error codes for all inslake errors.
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

	// Storage errors
	StorageBackendError
	StorageConnectError

	// Sources manifest errors
	SourcesConfigError
	SourcesEmptyError
	SourcesInvalidError

	// Generate errors
	GenerateWriteError

	// Bronze errors
	BronzeReadError
	BronzeAllSourcesFailedError

	// Silver errors
	SilverLoadError
	SilverStoreError

	// Gold errors
	GoldLoadError
	GoldStoreError
	GoldBuildError
)
