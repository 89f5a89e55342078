package tabular

// Entity identifies one named tabular dataset.
type Entity string

const (
	EntitySuppliers Entity = "suppliers"
	EntityProducts  Entity = "products"
	EntityClients   Entity = "clients"
)

var canonicalColumns = map[Entity][]string{
	EntitySuppliers: {"id", "name", "logo"},
	EntityProducts:  {"id", "supplier_id", "name", "price", "promo_price", "image"},
	EntityClients:   {"id", "name", "email", "password", "phone", "address", "state", "city", "cep"},
}

// Row is one record keyed by canonical column name.
type Row map[string]string

// Valid reports whether the entity has a canonical schema.
func (e Entity) Valid() bool {
	_, ok := canonicalColumns[e]
	return ok
}

// Columns returns the canonical ordered column set for the entity.
func (e Entity) Columns() []string {
	cols := canonicalColumns[e]
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// Normalize enforces the canonical schema on parsed rows: missing columns
// are filled with the empty value, columns outside the schema are dropped.
func Normalize(entity Entity, rows []Row) []Row {
	cols := canonicalColumns[entity]
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		normalized := make(Row, len(cols))
		for _, col := range cols {
			normalized[col] = row[col]
		}
		out = append(out, normalized)
	}
	return out
}

// Store reads and writes a full entity dataset. Read returns (nil, nil)
// when no source file holds data; callers treat that as an empty catalog.
// Write replaces the dataset wholesale, last writer wins.
type Store interface {
	Read(entity Entity) ([]Row, error)
	Write(entity Entity, rows []Row) error
}
