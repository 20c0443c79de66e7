package shard

import "github.com/pkg/errors"

// errNonASCIIByte and errInvalidUTF8 are the causes wrapped into
// internpool.TranscodeError by InternASCII and InternUTF8 respectively.
var (
	errNonASCIIByte = errors.New("byte with high bit set is not 7-bit ASCII")
	errInvalidUTF8  = errors.New("byte slice is not valid UTF-8")
)
