// Package metadata defines the facts a pipeline knows about the columns of its
// dataset and the repository those facts propagate through during the static
// contract check.
//
// A Metadata value plays two roles. As a postcondition it is registered in the
// Repository under its (target, kind) key. As a prerequisite it is checked
// against whatever is registered under the same key; the rules for that check
// belong to the concrete kind, so new kinds can be added without touching the
// repository or the checking algorithm.
package metadata

import "fmt"

// Kind is the stable discriminator of a metadata variant and part of its
// repository key.
type Kind string

const (
	KindPropertyExistence   Kind = "property-existence"
	KindPropertyDatePattern Kind = "property-date-pattern"
	KindPropertyDataType    Kind = "property-data-type"
	KindEscapeCharacters    Kind = "escape-characters"
)

// Metadata is one known fact about a column, or about the whole dataset when
// Target returns an empty string.
type Metadata interface {
	Kind() Kind
	Target() string
	// Satisfied reports whether this value, read as a requirement, holds given
	// the entry currently registered under the same key. current is nil when
	// nothing is registered.
	Satisfied(current Metadata) bool
	String() string
}

// Key identifies a repository slot.
type Key struct {
	Target string
	Kind   Kind
}

// KeyOf returns the repository key of m.
func KeyOf(m Metadata) Key {
	return Key{Target: m.Target(), Kind: m.Kind()}
}

func (k Key) String() string {
	if k.Target == "" {
		return string(k.Kind)
	}
	return fmt.Sprintf("%s(%s)", k.Kind, k.Target)
}
