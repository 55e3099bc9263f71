package mem

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/modern-go/reflect2"
)

// Value returns the address and size of the value v points to.
// v must be a non-nil pointer; anything else panics.
func Value(v any) (unsafe.Pointer, int) {
	if v == nil {
		panic("mem: nil value")
	}
	t := reflect2.TypeOf(v)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("mem: %s is not a pointer", t.Type1().String()))
	}
	if reflect2.IsNil(v) {
		panic(fmt.Sprintf("mem: nil %s", t.Type1().String()))
	}
	elem := t.(reflect2.PtrType).Elem()
	return reflect2.PtrOf(v), int(elem.Type1().Size())
}
