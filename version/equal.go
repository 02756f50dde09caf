package version

import (
	"fmt"
	"sort"
	"strings"

	"github.com/syssam/forma/diagram"
)

// ClassEqual reports if two classes have the same content. Attribute and
// method order is insignificant; everything else, including parameter
// order inside a method, is compared exactly.
func ClassEqual(a, b *diagram.Class) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || a.Package != b.Package || a.Kind != b.Kind || a.Stereotype != b.Stereotype {
		return false
	}
	if len(a.Attributes) != len(b.Attributes) || len(a.Methods) != len(b.Methods) {
		return false
	}
	aa, ba := sortedAttributes(a.Attributes), sortedAttributes(b.Attributes)
	for i := range aa {
		if *aa[i] != *ba[i] {
			return false
		}
	}
	am, bm := sortedMethods(a.Methods), sortedMethods(b.Methods)
	for i := range am {
		if !methodEqual(am[i], bm[i]) {
			return false
		}
	}
	return true
}

// RelationshipEqual reports if two relationships have the same content,
// ignoring their ids.
func RelationshipEqual(a, b *diagram.Relationship) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind == b.Kind &&
		a.SourceID == b.SourceID &&
		a.TargetID == b.TargetID &&
		a.SourceMultiplicity == b.SourceMultiplicity &&
		a.TargetMultiplicity == b.TargetMultiplicity &&
		a.SourceRole == b.SourceRole &&
		a.TargetRole == b.TargetRole &&
		a.SourceNavigable == b.SourceNavigable &&
		a.TargetNavigable == b.TargetNavigable
}

func methodEqual(a, b *diagram.Method) bool {
	if a.Name != b.Name || a.ReturnType != b.ReturnType || a.Visibility != b.Visibility ||
		a.Static != b.Static || a.Abstract != b.Abstract || len(a.Parameters) != len(b.Parameters) {
		return false
	}
	for i := range a.Parameters {
		if *a.Parameters[i] != *b.Parameters[i] {
			return false
		}
	}
	return true
}

// Sorting by the full content key makes the pairwise comparison above a
// multiset comparison.

func sortedAttributes(attrs []*diagram.Attribute) []*diagram.Attribute {
	s := make([]*diagram.Attribute, len(attrs))
	copy(s, attrs)
	sort.Slice(s, func(i, j int) bool { return attributeKey(s[i]) < attributeKey(s[j]) })
	return s
}

func sortedMethods(methods []*diagram.Method) []*diagram.Method {
	s := make([]*diagram.Method, len(methods))
	copy(s, methods)
	sort.Slice(s, func(i, j int) bool { return methodKey(s[i]) < methodKey(s[j]) })
	return s
}

func attributeKey(a *diagram.Attribute) string {
	return fmt.Sprintf("%s\x00%s\x00%s\x00%t\x00%t\x00%s", a.Name, a.Type, a.Visibility, a.Static, a.Final, a.Default)
}

func methodKey(m *diagram.Method) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\x00%s\x00%s\x00%t\x00%t", m.Name, m.ReturnType, m.Visibility, m.Static, m.Abstract)
	for _, p := range m.Parameters {
		fmt.Fprintf(&b, "\x00%s:%s", p.Name, p.Type)
	}
	return b.String()
}
