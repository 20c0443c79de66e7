// Package encview supplies the byte-view transcoding helpers spec §1
// names as an out-of-core collaborator ("transcoding helpers... are
// expected to live alongside the pool, not inside it"): named-encoding
// lookup and decode-to-UTF-8, built on golang.org/x/text so the pool
// itself never has to carry a codec registry.
package encview

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned by Lookup for a name not in the table
// below.
var ErrUnknownEncoding = errors.New("encview: unknown encoding name")

// named is the small, fixed set of encodings this pool's callers have
// actually asked for; it is deliberately not the full x/text registry.
var named = map[string]encoding.Encoding{
	"iso-8859-1":  charmap.ISO8859_1,
	"latin1":      charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"utf-16le":    unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be":    unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// Lookup resolves a case-insensitive encoding name to its x/text codec.
func Lookup(name string) (encoding.Encoding, error) {
	enc, ok := named[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEncoding, "%q", name)
	}
	return enc, nil
}

// Decode transcodes raw from the named encoding into a UTF-8 string, the
// representation the intern pool natively stores (spec §3 DATA MODEL,
// "value: the interned payload").
func Decode(raw []byte, name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", errors.Wrapf(err, "encview: decoding %s", name)
	}
	return string(decoded), nil
}

// Encode transcodes a UTF-8 string back into the named encoding's bytes,
// the inverse used by round-tripping callers and tests.
func Encode(value, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	encoded, _, err := transform.Bytes(enc.NewEncoder(), []byte(value))
	if err != nil {
		return nil, errors.Wrapf(err, "encview: encoding %s", name)
	}
	return encoded, nil
}
