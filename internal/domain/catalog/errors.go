package catalog

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrPackageNotFound = errors.New("package not found")
)
