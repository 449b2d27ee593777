package file

import "errors"

var (
	ErrFailedToReadFile  = errors.New("failed to read accounts file")
	ErrFailedToDecode    = errors.New("failed to decode accounts file")
	ErrFailedToEncode    = errors.New("failed to encode accounts")
	ErrFailedToWriteFile = errors.New("failed to write accounts file")
	ErrFailedToWatch     = errors.New("failed to watch accounts file")
)
