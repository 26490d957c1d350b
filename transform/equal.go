package transform

import (
	"reflect"

	"github.com/sqlforge/sqlforge/ast"
)

var commentsType = reflect.TypeOf(ast.Comments{})

// EqualModuloComments reports whether a and b are the same query shape
// once every positioned-comment slot is ignored -- the CTE merge-on-
// duplicate rule from spec.md section 9 ("CTE equality for merge-on-
// duplicate is defined as structural equality modulo comments").
//
// Hand-writing a comparator for the full closed node set would mean one
// case per variant with no real per-variant logic, so this walks a
// cloned copy of each tree with reflection, zeroing every ast.Comments
// field it finds, then defers to reflect.DeepEqual for the rest.
func EqualModuloComments(a, b ast.Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ca := a.Clone()
	cb := b.Clone()
	clearComments(reflect.ValueOf(ca))
	clearComments(reflect.ValueOf(cb))
	return reflect.DeepEqual(ca, cb)
}

func clearComments(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return
		}
		clearComments(v.Elem())
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		clearComments(v.Elem())
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			clearComments(v.Index(i))
		}
	case reflect.Map:
		for _, k := range v.MapKeys() {
			clearComments(v.MapIndex(k))
		}
	case reflect.Struct:
		if v.Type() == commentsType {
			if v.CanSet() {
				v.Set(reflect.Zero(commentsType))
			}
			return
		}
		for i := 0; i < v.NumField(); i++ {
			clearComments(v.Field(i))
		}
	}
}
