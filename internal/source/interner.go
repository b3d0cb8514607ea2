package source

// NameID is a dense handle for an interned identifier string, shared by the
// lexer (token text), the symbol table (path segments), and the type/exn
// stores (constructor names).
type NameID uint32

// Interner deduplicates identifier text into dense NameIDs. A single
// Interner is shared by every file in a FileSet so that the same
// identifier spelled in two files maps to the same NameID.
type Interner struct {
	index map[string]NameID
	names []string
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{index: make(map[string]NameID, 256)}
}

// Intern returns the dense id for s, allocating one if s was not seen before.
func (in *Interner) Intern(s string) NameID {
	if id, ok := in.index[s]; ok {
		return id
	}
	id := NameID(len(in.names))
	in.names = append(in.names, s)
	in.index[s] = id
	return id
}

// Lookup returns the id for s without allocating, if present.
func (in *Interner) Lookup(s string) (NameID, bool) {
	id, ok := in.index[s]
	return id, ok
}

// String returns the text for id.
func (in *Interner) String(id NameID) string { return in.names[id] }

// Len returns the number of distinct interned strings.
func (in *Interner) Len() int { return len(in.names) }
