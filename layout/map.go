package layout

import "fusion/ast"

// Map is a record name -> layout table, built once per program and shared
// by the semantic analyzer and IR emitter.
type Map map[string]Record

// Build computes the layout of every record definition in records.
func Build(records []*ast.RecordDef) Map {
	m := make(Map, len(records))
	for _, r := range records {
		fields := make([]FieldSpec, len(r.Fields))
		for i, f := range r.Fields {
			fields[i] = FieldSpec{Name: f.Name, Type: f.Type}
		}
		m[r.Name] = Compute(fields)
	}
	return m
}
