// Package naming provides the identifier conversions shared by the rest of
// forma: snake_case table and column names, PascalCase and camelCase symbol
// names, and pluralization of class names for collection fields.
//
// Conversions keep common initialisms (ID, URL, HTTP, ...) upper-cased the
// way they are written in source code. Additional initialisms can be
// registered with AddAcronym before running a mapping.
package naming

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules    = inflect.NewDefaultRuleset()
	title    = cases.Title(language.English, cases.NoLower)
	acronyms = make(map[string]struct{})
)

func init() {
	for _, w := range []string{
		"ACL", "API", "ASCII", "AWS", "CPU", "CSS", "DNS", "EOF", "GB", "GUID",
		"HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "KB", "LHS", "MAC", "MB",
		"QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "SSO", "TCP",
		"TLS", "TTL", "UDP", "UI", "UID", "UUID", "URI", "URL", "UTF8", "VM",
		"XML", "XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
	}
}

// AddAcronym registers an additional initialism that Pascal and Camel
// preserve as upper-case. Registration is not safe for concurrent use
// with the conversion functions.
func AddAcronym(word string) {
	acronyms[strings.ToUpper(word)] = struct{}{}
}

// isSeparator reports if the rune is a word separator inside an identifier.
func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '\t':
		return true
	}
	return false
}

// Snake converts the given name into a snake_case.
//
//	Username  => username
//	FullName  => full_name
//	HTTPCode  => http_code
//	UserID    => user_id
func Snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, the current
		// letter is upper-case, and the previous letter is lower-case
		// ("UserInfo"), or the next letter is lower-case and the word
		// so far is an initialism run ("HTTPCode").
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteString(strings.ToLower(string(r)))
	}
	return b.String()
}

// Pascal converts the given name into a PascalCase.
//
//	user_info  => UserInfo
//	full_name  => FullName
//	user_id    => UserID
//	full-admin => FullAdmin
func Pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	return pascalWords(words)
}

// Camel converts the given name into a camelCase.
//
//	user_info  => userInfo
//	full_name  => fullName
//	user_id    => userID
func Camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[0]) + pascalWords(words[1:])
}

func pascalWords(words []string) string {
	var b strings.Builder
	for _, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			b.WriteString(upper)
			continue
		}
		b.WriteString(title.String(w))
	}
	return b.String()
}

// Plural returns the plural form of the given name.
//
//	order      => orders
//	category   => categories
//	order_item => order_items
func Plural(name string) string {
	return rules.Pluralize(name)
}

// Singular returns the singular form of the given name.
//
//	orders     => order
//	categories => category
//	people     => person
func Singular(name string) string {
	return rules.Singularize(name)
}
