package rules

import "errors"

var (
	ErrDocumentNotFound = errors.New("configuration document not found")
	ErrUnknownKey       = errors.New("unknown configuration key")
	ErrInvalidTierOrder = errors.New("tier thresholds must be strictly increasing")
	ErrInvalidDocument  = errors.New("configuration document is malformed")
)
