package outline

import "errors"

var (
	// ErrInvalidParams is returned for kernel parameters or sizes that no
	// pass can run with
	ErrInvalidParams = errors.New("invalid kernel parameters")

	// ErrFormatMismatch is returned when a variant is given a source or
	// destination whose pixel format it cannot use
	ErrFormatMismatch = errors.New("pixel format mismatch")

	// ErrSizeMismatch is returned when a full-screen pass is given a
	// destination whose dimensions differ from its source
	ErrSizeMismatch = errors.New("render target size mismatch")

	// ErrMissingCapability is returned when the device lacks a feature the
	// selected technique depends on
	ErrMissingCapability = errors.New("missing device capability")
)
