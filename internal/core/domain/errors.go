package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotImplemented indicates a service was created without a required dependency.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown matcher type or route action.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNoRoute indicates no configured route matched a request.
	ErrNoRoute = errors.New("no matching route")

	// ErrInvalidRoute indicates a route definition failed validation.
	ErrInvalidRoute = errors.New("invalid route")

	// ErrInvalidDocument indicates an XML document could not be processed.
	ErrInvalidDocument = errors.New("invalid document")
)
