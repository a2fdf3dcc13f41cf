package urlreader

import (
	"errors"
	"fmt"
)

var (
	// ErrNoReader is returned when no registered reader accepts a URL.
	ErrNoReader = errors.New("no reader available")

	// ErrInvalidURL is returned when a reader is given a URL it can't
	// interpret, such as a storage URL without a bucket.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrNotSupported is returned by readers for operations they don't offer.
	ErrNotSupported = errors.New("operation not supported")
)

// NotFoundError is returned when the backend reports that the requested
// object or tree doesn't exist. The backend's own error is preserved and can
// be retrieved with errors.Unwrap.
type NotFoundError struct {
	Err error
	URL string
}

func (e *NotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s not found", e.URL)
	}

	return fmt.Sprintf("%s not found: %v", e.URL, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether any error in err's chain is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError

	return errors.As(err, &nf)
}
