package mapping

// typeTable is the fixed translation from diagram-level primitive names to
// persistence-layer type names. Date collapses into LocalDateTime.
var typeTable = map[string]string{
	"String":     "String",
	"Integer":    "Integer",
	"Long":       "Long",
	"Double":     "Double",
	"Float":      "Float",
	"Boolean":    "Boolean",
	"Date":       "LocalDateTime",
	"LocalDate":  "LocalDate",
	"LocalTime":  "LocalTime",
	"BigDecimal": "BigDecimal",
	"UUID":       "UUID",
	"List":       "List",
	"Set":        "Set",
	"Map":        "Map",
}

// MapType translates a diagram-level type name into its persistence-layer
// counterpart. Unknown names pass through unchanged so user-defined domain
// types stay usable; there is no failure mode.
func MapType(diagramType string) string {
	if t, ok := typeTable[diagramType]; ok {
		return t
	}
	return diagramType
}
