package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Naming predicates shared by the built-in rules and exposed to scripts
// through the validation_helpers namespace.

// IsPascalCase reports if s starts with an upper-case letter and contains
// no underscore.
func IsPascalCase(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && unicode.IsUpper(r) && !strings.Contains(s, "_")
}

// IsCamelCase reports if s starts with a lower-case letter and contains
// no underscore.
func IsCamelCase(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && unicode.IsLower(r) && !strings.Contains(s, "_")
}

// IsSnakeCase reports if s has at least one letter, all of them
// lower-case, and no space.
func IsSnakeCase(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case r == ' ':
			return false
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			return false
		case unicode.IsLower(r):
			cased = true
		}
	}
	return cased
}

// HasPattern reports if pattern occurs in s, ignoring case.
func HasPattern(s, pattern string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(pattern))
}
