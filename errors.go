package internpool

import "github.com/pkg/errors"

// ArgumentError reports an invalid constructor or call argument: a
// negative capacity, a zero or negative max length, a nil value where one
// is required. It is fatal to the call that raised it.
type ArgumentError struct {
	Arg     string
	Message string
}

func (e *ArgumentError) Error() string {
	return errors.Errorf("internpool: invalid argument %q: %s", e.Arg, e.Message).Error()
}

func newArgumentError(arg, message string) error {
	return &ArgumentError{Arg: arg, Message: message}
}

// ConcurrentModificationError is raised when a hash-chain walk exceeds the
// table's capacity, which can only happen if the table's single-writer
// contract (spec §5) was violated by a caller accessing it from more than
// one goroutine without holding the owning shard's lock.
type ConcurrentModificationError struct {
	Capacity int
}

func (e *ConcurrentModificationError) Error() string {
	return errors.Errorf("internpool: chain walk exceeded table capacity (%d); table was modified concurrently", e.Capacity).Error()
}

func newConcurrentModificationError(capacity int) error {
	return errors.WithStack(&ConcurrentModificationError{Capacity: capacity})
}

// TranscodeError wraps a failure converting a byte slice in a named
// encoding to the table's native code-unit representation. It propagates
// the underlying transcoding library's error unchanged, per spec §7.
type TranscodeError struct {
	Encoding string
	Cause    error
}

func (e *TranscodeError) Error() string {
	return errors.Wrapf(e.Cause, "internpool: transcoding %s input", e.Encoding).Error()
}

func (e *TranscodeError) Unwrap() error { return e.Cause }

func newTranscodeError(encoding string, cause error) error {
	return &TranscodeError{Encoding: encoding, Cause: cause}
}

// NewTranscodeError lets the shard package's byte-view entry points raise
// spec §7's transcode-failure kind without reaching into this package's
// unexported constructor.
func NewTranscodeError(encoding string, cause error) error {
	return newTranscodeError(encoding, cause)
}
