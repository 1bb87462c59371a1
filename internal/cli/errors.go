package cli

import "errors"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigInvalid      = errors.New("invalid config file")
	errIndentNegative     = errors.New("indent cannot be negative")
	errWorkersNegative    = errors.New("workers cannot be negative")
	errFileRequired       = errors.New("file argument is required")
	errDirRequired        = errors.New("directory argument is required")
	errKeyRequired        = errors.New("search key is required")
	errTwoFilesRequired   = errors.New("exactly two file arguments are required")
	errNotAnObject        = errors.New("document is not a JSON object")
	errUnknownStrategy    = errors.New("unknown strategy")
)
