package gen

// Kind is the expected JSON shape of a contract field.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindStringList
	KindObject
	KindObjectList
)

// Contract describes what a stage accepts from the model. Required fields
// must be present, correctly typed and non-empty. Optional fields are kept
// when present and typed correctly, dropped otherwise. With Strict set,
// every field outside the contract is discarded; the input map is never
// mutated.
type Contract struct {
	Required map[string]Kind
	Optional map[string]Kind
	Strict   bool
}

// FieldNames returns the union of required and optional field names.
func (c Contract) FieldNames() []string {
	names := make([]string, 0, len(c.Required)+len(c.Optional))
	for k := range c.Required {
		names = append(names, k)
	}
	for k := range c.Optional {
		names = append(names, k)
	}
	return names
}
