// Package mapper is the reference implementation of the row-mapper
// external collaborator spec.md section 1 frames as "interface only"
// but section 6 specifies in enough behavioral detail (missing/null key
// columns, optional-parent omission, identity dedup, cycle detection,
// coercion) that it reads as a spec for an implementation. It assembles
// a graph of entity instances from flat query-result rows, the same
// map-keyed O(1) lookup idiom ast's CTE name cache uses for identity-by-
// key caching.
package mapper

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/sqlforge/sqlforge/sqlerr"
)

// Row is one flat result-set row: column name to raw scanned value.
type Row map[string]any

// Coerce applies the optional coercion rules (spec.md section 6) to a
// single raw value: numeric strings become float64, "true"/"false"
// become bool, strict RFC 3339 strings become time.Time, every other
// string and every non-string value passes through untouched.
func Coerce(v any, enabled bool) any {
	if !enabled {
		return v
	}
	s, ok := v.(string)
	if !ok {
		return v
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return s
}

// Relation describes one entity reachable from a row via a local key
// column. A Required relation demands a present, non-null LocalKey
// value (spec.md section 6: missing -> sqlerr.MissingLocalKeyColumn,
// present-but-null -> sqlerr.NullLocalKey). An optional relation is
// silently omitted, not errored, when LocalKey is null or absent, or
// when every column in ParentKeys is null -- a zero-valued key (0, "")
// is not null and still hydrates the relation.
type Relation struct {
	Name       string
	Entity     string
	LocalKey   string
	Required   bool
	ParentKeys []string
	Mapper     *Mapper
}

// Entity describes one mapped entity: its identity column, a
// constructor from a (possibly coerced) row, and the relations it
// carries to other entities.
type Entity struct {
	Name      string
	KeyColumn string
	Build     func(row Row) (any, error)
	Relations []Relation
}

// Mapper assembles a graph of Entity instances from flat rows.
type Mapper struct {
	Root   Entity
	Coerce bool
}

// invocation is the state spec.md section 6 requires fresh on every
// call: an identity cache keyed by "entity:keyvalue" so repeated rows
// referencing the same entity instance yield the same object reference,
// and the path of keys currently being assembled, for cycle detection.
type invocation struct {
	cache map[string]any
	path  []string
}

// MapRows assembles every row into an Entity graph rooted at m.Root.
// The identity cache and cycle-detection path are fresh for this call
// only -- two calls to MapRows never share dedup state (spec.md
// section 6, "identity dedup... fresh cache per invocation").
func (m *Mapper) MapRows(rows []Row) ([]any, error) {
	inv := &invocation{cache: map[string]any{}}
	seen := map[string]bool{}
	var out []any
	for _, row := range rows {
		obj, key, err := m.mapEntity(m.Root, row, inv)
		if err != nil {
			return nil, err
		}
		if obj == nil {
			continue
		}
		if !seen[key] {
			seen[key] = true
			out = append(out, obj)
		}
	}
	return out, nil
}

func (m *Mapper) mapEntity(e Entity, row Row, inv *invocation) (any, string, error) {
	rawKey, present := row[e.KeyColumn]
	if !present || rawKey == nil {
		return nil, "", &sqlerr.MissingKeyColumn{Column: e.KeyColumn}
	}
	key := fmt.Sprintf("%s:%v", e.Name, rawKey)

	for _, p := range inv.path {
		if p == key {
			return nil, "", &sqlerr.CircularEntityMapping{Path: append(append([]string{}, inv.path...), key)}
		}
	}

	if cached, ok := inv.cache[key]; ok {
		return cached, key, nil
	}

	obj, err := e.Build(m.coerceRow(row))
	if err != nil {
		return nil, "", err
	}

	inv.path = append(inv.path, key)
	for _, rel := range e.Relations {
		child, err := m.mapRelation(rel, row, inv)
		if err != nil {
			inv.path = inv.path[:len(inv.path)-1]
			return nil, "", err
		}
		if child != nil {
			attachRelation(obj, rel.Name, child)
		}
	}
	inv.path = inv.path[:len(inv.path)-1]

	inv.cache[key] = obj
	return obj, key, nil
}

func (m *Mapper) mapRelation(rel Relation, row Row, inv *invocation) (any, error) {
	rawKey, present := row[rel.LocalKey]
	if rel.Required {
		if !present {
			return nil, &sqlerr.MissingLocalKeyColumn{Column: rel.LocalKey, Relation: rel.Name}
		}
		if rawKey == nil {
			return nil, &sqlerr.NullLocalKey{Column: rel.LocalKey, Relation: rel.Name, Entity: rel.Entity}
		}
	} else {
		if !present || rawKey == nil {
			return nil, nil
		}
		if allParentKeysNull(row, rel.ParentKeys) {
			return nil, nil
		}
	}
	if rel.Mapper == nil {
		return nil, nil
	}
	obj, _, err := rel.Mapper.mapEntity(rel.Mapper.Root, row, inv)
	return obj, err
}

func allParentKeysNull(row Row, keys []string) bool {
	if len(keys) == 0 {
		return false
	}
	for _, k := range keys {
		if v, present := row[k]; present && v != nil {
			return false
		}
	}
	return true
}

func (m *Mapper) coerceRow(row Row) Row {
	if !m.Coerce {
		return row
	}
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = Coerce(v, true)
	}
	return out
}

// attachRelation sets obj's exported field named name to value, or
// appends value to it when the field is a slice -- the one place this
// package reaches for reflection, since Build constructs an arbitrary
// caller-defined struct type this package cannot know about statically.
func attachRelation(obj any, name string, value any) {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}
	field := rv.FieldByName(name)
	if !field.IsValid() || !field.CanSet() {
		return
	}
	fv := reflect.ValueOf(value)
	if fv.Type().AssignableTo(field.Type()) {
		field.Set(fv)
		return
	}
	if field.Kind() == reflect.Slice && fv.Type().AssignableTo(field.Type().Elem()) {
		field.Set(reflect.Append(field, fv))
	}
}
