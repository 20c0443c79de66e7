package shard

import (
	"unicode/utf8"

	bpool "github.com/libp2p/go-buffer-pool"
	"golang.org/x/text/encoding"

	"github.com/dreamware/internpool"
)

// stackBufferCap is the largest byte view copied onto a fixed-size local
// array rather than rented from the shared buffer pool (spec §4.3
// "Byte-view inputs").
const stackBufferCap = 256

// copyBytes snapshots raw into a buffer this call owns, independent of
// whatever the caller does with raw afterward, using a stack-local array
// for small inputs and a pool-rented buffer (spec §5 "array pool") for
// larger ones. release must be called exactly once, even on the error
// path, which is why every caller below defers it immediately.
func copyBytes(raw []byte) (buf []byte, release func()) {
	if len(raw) <= stackBufferCap {
		var stack [stackBufferCap]byte
		n := copy(stack[:], raw)
		return stack[:n], func() {}
	}
	rented := bpool.Get(len(raw))
	copy(rented, raw)
	return rented, func() { bpool.Put(rented) }
}

// InternASCII interprets raw as 7-bit ASCII code units and interns the
// resulting value (spec §6 "intern_ascii"). A byte with its high bit set
// is not valid 7-bit ASCII and is reported as a transcode failure.
func (p *Pool) InternASCII(raw []byte) (string, error) {
	buf, release := copyBytes(raw)
	defer release()

	for _, b := range buf {
		if b >= 0x80 {
			return "", internpool.NewTranscodeError("ascii", errNonASCIIByte)
		}
	}
	return p.Intern(string(buf))
}

// InternUTF8 decodes raw as UTF-8 and interns the resulting value (spec
// §6 "intern_utf8"). A Go string's code units already are UTF-8 bytes, so
// once validity is confirmed no further transcoding is needed.
func (p *Pool) InternUTF8(raw []byte) (string, error) {
	buf, release := copyBytes(raw)
	defer release()

	if !utf8.Valid(buf) {
		return "", internpool.NewTranscodeError("utf-8", errInvalidUTF8)
	}
	return p.Intern(string(buf))
}

// InternEncoded decodes raw from an arbitrary named encoding (spec §6
// "intern(bytes, encoding)"), using the standard encoding.Encoding
// interface so any golang.org/x/text/encoding codec can be supplied.
func (p *Pool) InternEncoded(raw []byte, enc encoding.Encoding) (string, error) {
	buf, release := copyBytes(raw)
	defer release()

	decoded, err := enc.NewDecoder().Bytes(buf)
	if err != nil {
		return "", internpool.NewTranscodeError(encodingName(enc), err)
	}
	return p.Intern(string(decoded))
}

func encodingName(enc encoding.Encoding) string {
	type named interface{ String() string }
	if n, ok := enc.(named); ok {
		return n.String()
	}
	return "unknown"
}
