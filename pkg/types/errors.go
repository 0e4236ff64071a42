package types

import "errors"

var (
	ErrApplicationNotFound = errors.New("job application not found")
	ErrCompanyNotFound     = errors.New("company not found")

	ErrUnknownField       = errors.New("unknown field")
	ErrFieldImmutable     = errors.New("field is immutable")
	ErrFieldNotVerifiable = errors.New("field does not carry a verification record")
	ErrNoProofDocument    = errors.New("no proof document uploaded for field")
)
