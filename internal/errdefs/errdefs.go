// Package errdefs defines the error kinds shared by every imgdata package.
//
// Errors returned by the loaders, the lookup table and the manager wrap exactly
// one of these sentinels, so callers classify failures with errors.Is:
//
//	if errors.Is(err, errdefs.ErrIndexOutOfRange) {
//	    // coordinates were outside the image
//	}
//
// A resolution miss is not an error; it yields the UNKNOWN sentinel name.
package errdefs

import "errors"

var (
	// ErrSourceUnreadable reports a color definition or image path that is
	// missing or cannot be opened or decoded.
	ErrSourceUnreadable = errors.New("source unreadable")

	// ErrMalformedSource reports color definition content that does not
	// deserialize into the expected shape.
	ErrMalformedSource = errors.New("malformed source")

	// ErrInvalidEncoding reports a color encoding that is not valid
	// hexadecimal or whose channels are outside 0-255.
	ErrInvalidEncoding = errors.New("invalid color encoding")

	// ErrIndexOutOfRange reports pixel coordinates outside the image bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
)
