package model

// Record is a single vehicle registration materialized from a Table row.
type Record struct {
	State     string
	Year      int16
	Make      string
	Model     string
	County    string
	City      string
	Type      string
	RangeMile float32
}

// Dict interns low-cardinality string values as dense uint32 codes. The code
// of a value is stable for the lifetime of the dictionary.
type Dict struct {
	codes  map[string]uint32
	values []string
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{codes: make(map[string]uint32)}
}

// Code interns v and returns its code.
func (d *Dict) Code(v string) uint32 {
	if c, ok := d.codes[v]; ok {
		return c
	}
	c := uint32(len(d.values))
	d.codes[v] = c
	d.values = append(d.values, v)
	return c
}

// Value returns the string for a code. Codes are always obtained from Code,
// so c is in range by construction.
func (d *Dict) Value(c uint32) string { return d.values[c] }

// Len returns the number of distinct values interned.
func (d *Dict) Len() int { return len(d.values) }

// CatColumn stores a categorical column as dictionary codes.
type CatColumn struct {
	dict  *Dict
	codes []uint32
}

// NewCatColumn returns an empty categorical column.
func NewCatColumn() CatColumn {
	return CatColumn{dict: NewDict()}
}

func (c *CatColumn) append(v string) {
	c.codes = append(c.codes, c.dict.Code(v))
}

// Value returns the value at row i.
func (c CatColumn) Value(i int) string { return c.dict.Value(c.codes[i]) }

// Len returns the number of rows.
func (c CatColumn) Len() int { return len(c.codes) }

// Cardinality returns the number of distinct values seen.
func (c CatColumn) Cardinality() int { return c.dict.Len() }

// Table is a column-oriented registration table. It is built once by the
// loader and read-only afterwards.
type Table struct {
	State  CatColumn
	County CatColumn
	City   CatColumn
	Make   CatColumn
	Model  CatColumn
	Type   CatColumn
	Year   []int16
	Range  []float32
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Year) }

// Row materializes the record at index i.
func (t *Table) Row(i int) Record {
	return Record{
		State:     t.State.Value(i),
		Year:      t.Year[i],
		Make:      t.Make.Value(i),
		Model:     t.Model.Value(i),
		County:    t.County.Value(i),
		City:      t.City.Value(i),
		Type:      t.Type.Value(i),
		RangeMile: t.Range[i],
	}
}

// Builder accumulates records into a Table.
type Builder struct {
	t Table
}

// NewBuilder returns a Builder backed by empty columns.
func NewBuilder() *Builder {
	return &Builder{t: Table{
		State:  NewCatColumn(),
		County: NewCatColumn(),
		City:   NewCatColumn(),
		Make:   NewCatColumn(),
		Model:  NewCatColumn(),
		Type:   NewCatColumn(),
	}}
}

// Append adds one record.
func (b *Builder) Append(r Record) {
	b.t.State.append(r.State)
	b.t.County.append(r.County)
	b.t.City.append(r.City)
	b.t.Make.append(r.Make)
	b.t.Model.append(r.Model)
	b.t.Type.append(r.Type)
	b.t.Year = append(b.t.Year, r.Year)
	b.t.Range = append(b.t.Range, r.RangeMile)
}

// Table returns the accumulated table. The builder must not be reused after.
func (b *Builder) Table() *Table { return &b.t }
