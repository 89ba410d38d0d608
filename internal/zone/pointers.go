package zone

import (
	"fmt"
	"reflect"
	"sync"
)

var pointerFree sync.Map // reflect.Type -> bool

func mustBePointerFree[T any]() {
	typ := reflect.TypeFor[T]()
	if ok, cached := pointerFree.Load(typ); cached {
		if !ok.(bool) {
			panic(fmt.Sprintf("zone: %s holds Go pointers and cannot live in a zone", typ))
		}
		return
	}
	ok := !hasPointers(typ)
	pointerFree.Store(typ, ok)
	if !ok {
		panic(fmt.Sprintf("zone: %s holds Go pointers and cannot live in a zone", typ))
	}
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
