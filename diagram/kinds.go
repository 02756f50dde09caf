package diagram

// DiagramKind reports the kind of diagram a graph was drawn as. Most of the
// engines in this module operate on class diagrams only; validation rules
// declare the kinds they apply to.
type DiagramKind string

// Diagram kinds.
const (
	DiagramClass      DiagramKind = "class"
	DiagramSequence   DiagramKind = "sequence"
	DiagramUseCase    DiagramKind = "usecase"
	DiagramActivity   DiagramKind = "activity"
	DiagramState      DiagramKind = "state"
	DiagramComponent  DiagramKind = "component"
	DiagramDeployment DiagramKind = "deployment"
)

// Valid reports if the diagram kind is one of the enumerated kinds.
func (k DiagramKind) Valid() bool {
	switch k {
	case DiagramClass, DiagramSequence, DiagramUseCase, DiagramActivity,
		DiagramState, DiagramComponent, DiagramDeployment:
		return true
	}
	return false
}

func (k DiagramKind) String() string { return string(k) }

// ClassKind is the structural kind of a class node.
type ClassKind string

// Class kinds.
const (
	KindClass     ClassKind = "class"
	KindAbstract  ClassKind = "abstract_class"
	KindInterface ClassKind = "interface"
	KindEnum      ClassKind = "enum"
	KindRecord    ClassKind = "record"
)

// Valid reports if the class kind is one of the enumerated kinds.
func (k ClassKind) Valid() bool {
	switch k {
	case KindClass, KindAbstract, KindInterface, KindEnum, KindRecord:
		return true
	}
	return false
}

func (k ClassKind) String() string { return string(k) }

// Visibility of an attribute or a method.
type Visibility string

// Visibility values.
const (
	Public    Visibility = "public"
	Private   Visibility = "private"
	Protected Visibility = "protected"
	Package   Visibility = "package"
)

// Valid reports if the visibility is one of the enumerated values.
func (v Visibility) Valid() bool {
	switch v {
	case Public, Private, Protected, Package:
		return true
	}
	return false
}

func (v Visibility) String() string { return string(v) }

// RelKind is the semantic kind of a relationship edge.
type RelKind string

// Relationship kinds.
const (
	Association    RelKind = "association"
	Aggregation    RelKind = "aggregation"
	Composition    RelKind = "composition"
	Inheritance    RelKind = "inheritance"
	Realization    RelKind = "realization"
	Dependency     RelKind = "dependency"
	Generalization RelKind = "generalization"
)

// Valid reports if the relationship kind is one of the enumerated kinds.
func (k RelKind) Valid() bool {
	switch k {
	case Association, Aggregation, Composition, Inheritance,
		Realization, Dependency, Generalization:
		return true
	}
	return false
}

func (k RelKind) String() string { return string(k) }

// Multiplicity is the cardinality constraint on one end of a relationship.
type Multiplicity string

// Multiplicity values.
const (
	ZeroOne  Multiplicity = "0..1"
	One      Multiplicity = "1"
	ZeroMany Multiplicity = "0..*"
	OneMany  Multiplicity = "1..*"
	Many     Multiplicity = "*"
)

// Valid reports if the multiplicity is one of the five enumerated values.
func (m Multiplicity) Valid() bool {
	switch m {
	case ZeroOne, One, ZeroMany, OneMany, Many:
		return true
	}
	return false
}

// Plural reports if the multiplicity admits more than one element.
func (m Multiplicity) Plural() bool {
	switch m {
	case ZeroMany, OneMany, Many:
		return true
	}
	return false
}

// Singular reports if the multiplicity admits at most one element.
func (m Multiplicity) Singular() bool {
	switch m {
	case ZeroOne, One:
		return true
	}
	return false
}

func (m Multiplicity) String() string { return string(m) }
