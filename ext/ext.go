// Package ext supplies the extension convenience wrappers spec §1 names
// as an out-of-core collaborator: small helpers layered on top of a
// shard.Pool that the core pool and table deliberately don't carry
// themselves.
package ext

import "html"

// interner is the subset of shard.Pool's surface these helpers need; it
// is declared locally so this package doesn't import shard just to name
// its argument type, and so it is equally usable against any future
// alternate implementation with the same Intern signature.
type interner interface {
	Intern(value string) (string, error)
}

// InternHTMLEscaped HTML-escapes value before interning it, so that
// repeated escaping of the same raw value (a common pattern in template
// rendering) shares one canonical escaped instance.
func InternHTMLEscaped(p interner, value string) (string, error) {
	return p.Intern(html.EscapeString(value))
}

// InternAll interns every value in values, returning canonical instances
// in the same order. It stops and returns the first error encountered.
func InternAll(p interner, values []string) ([]string, error) {
	result := make([]string, len(values))
	for i, v := range values {
		canonical, err := p.Intern(v)
		if err != nil {
			return nil, err
		}
		result[i] = canonical
	}
	return result, nil
}
