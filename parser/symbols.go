package parser

// SymbolTable maps a label name to the absolute address it denotes.
// Insertion order is irrelevant; a duplicate Put is a fatal assembly
// error (spec.md §4.B). Lookups never mutate the table.
type SymbolTable struct {
	addresses map[string]uint16
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{addresses: make(map[string]uint16)}
}

// Contains reports whether name has been defined.
func (st *SymbolTable) Contains(name string) bool {
	_, ok := st.addresses[name]
	return ok
}

// Get returns the address bound to name, or false if it is undefined.
func (st *SymbolTable) Get(name string) (uint16, bool) {
	addr, ok := st.addresses[name]
	return addr, ok
}

// Put binds name to addr. It fails with a *parser.Error of kind
// ErrDuplicateLabel if name is already defined.
func (st *SymbolTable) Put(name string, addr uint16, pos Position) error {
	if st.Contains(name) {
		return DuplicateLabel(pos, name)
	}
	st.addresses[name] = addr
	return nil
}

// Names returns every defined symbol name, in no particular order.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.addresses))
	for name := range st.addresses {
		names = append(names, name)
	}
	return names
}

// Len reports the number of defined symbols.
func (st *SymbolTable) Len() int {
	return len(st.addresses)
}
