package factory

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/trufflesuite/vscode-ext-sub002/pkg/tree"
)

// Object is an untyped JSON object as produced by encoding/json or Item.ToJSON.
type Object = map[string]any

// FieldType is the JSON type a required field must have.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldArray   FieldType = "array"
	FieldBoolean FieldType = "boolean"
)

// Field names a required field and its JSON type.
type Field struct {
	Name string
	Type FieldType
}

// Creator validates and constructs one item kind.
type Creator struct {
	Required []Field
	Build    func(obj Object) (*tree.Item, error)
}

// SchemaValidationError reports a missing or mistyped field in persisted JSON.
type SchemaValidationError struct {
	Field    string
	Expected FieldType
	Fragment string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("missing or invalid required field %q (expected %s) in %s", e.Field, e.Expected, e.Fragment)
}

// UnregisteredTypeError is returned for an itemType without a creator.
type UnregisteredTypeError struct {
	ItemType tree.ItemType
}

func (e *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("no creator registered for item type %d", int(e.ItemType))
}

// Factory maps item types to creators and rebuilds trees from JSON.
type Factory struct {
	creators map[tree.ItemType]Creator
}

// New returns an empty factory.
func New() *Factory {
	return &Factory{creators: make(map[tree.ItemType]Creator)}
}

// Default returns a factory holding a creator for every built-in item type.
func Default() *Factory {
	f := New()
	for _, r := range defaultCreators() {
		if err := f.Register(r.itemType, r.creator); err != nil {
			panic(err)
		}
	}
	return f
}

// Register binds c to t. Registering a type twice is an error.
func (f *Factory) Register(t tree.ItemType, c Creator) error {
	if c.Build == nil {
		return fmt.Errorf("creator for item type %d has no build function", int(t))
	}
	if _, exists := f.creators[t]; exists {
		return fmt.Errorf("creator for item type %d already registered", int(t))
	}
	f.creators[t] = c
	return nil
}

// Registered lists the registered item types in ascending order.
func (f *Factory) Registered() []tree.ItemType {
	out := make([]tree.ItemType, 0, len(f.creators))
	for t := range f.creators {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Create builds the item described by obj and, recursively, its children.
func (f *Factory) Create(obj Object) (*tree.Item, error) {
	if err := validate(obj, Field{Name: "itemType", Type: FieldNumber}); err != nil {
		return nil, err
	}
	n, err := number(obj["itemType"])
	if err != nil {
		return nil, &SchemaValidationError{Field: "itemType", Expected: FieldNumber, Fragment: fragment(obj)}
	}
	itemType := tree.ItemType(n)

	creator, ok := f.creators[itemType]
	if !ok {
		return nil, &UnregisteredTypeError{ItemType: itemType}
	}
	for _, field := range creator.Required {
		if err := validate(obj, field); err != nil {
			return nil, err
		}
	}

	item, err := creator.Build(obj)
	if err != nil {
		return nil, fmt.Errorf("create %s %v: %w", itemType, obj["label"], err)
	}

	raw, ok := obj["children"]
	if !ok || raw == nil {
		return item, nil
	}
	list := reflect.ValueOf(raw)
	if list.Kind() != reflect.Slice {
		return item, nil
	}
	children := make([]*tree.Item, 0, list.Len())
	for idx := 0; idx < list.Len(); idx++ {
		childObj, ok := list.Index(idx).Interface().(map[string]any)
		if !ok {
			return nil, &SchemaValidationError{Field: "children", Expected: FieldArray, Fragment: fragment(obj)}
		}
		child, err := f.Create(childObj)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if err := item.SetChildren(children); err != nil {
		return nil, err
	}
	return item, nil
}

// Decode rebuilds the persisted top-level item list.
func (f *Factory) Decode(data []byte) ([]*tree.Item, error) {
	var objs []Object
	if err := json.Unmarshal(data, &objs); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	items := make([]*tree.Item, 0, len(objs))
	for _, obj := range objs {
		item, err := f.Create(obj)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Encode serialises a top-level item list in the persisted shape.
func Encode(items []*tree.Item) ([]byte, error) {
	objs := make([]Object, 0, len(items))
	for _, item := range items {
		objs = append(objs, item.ToJSON())
	}
	return json.Marshal(objs)
}

func validate(obj Object, field Field) error {
	v, ok := obj[field.Name]
	if !ok || v == nil || !hasType(v, field.Type) {
		return &SchemaValidationError{Field: field.Name, Expected: field.Type, Fragment: fragment(obj)}
	}
	return nil
}

func hasType(v any, t FieldType) bool {
	if _, ok := v.(json.Number); ok {
		return t == FieldNumber
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String:
		return t == FieldString
	case reflect.Bool:
		return t == FieldBoolean
	case reflect.Slice, reflect.Array:
		return t == FieldArray
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return t == FieldNumber
	}
	return false
}

func number(v any) (int64, error) {
	if n, ok := v.(json.Number); ok {
		return n.Int64()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != float64(int64(f)) {
			return 0, fmt.Errorf("%v is not an integer", f)
		}
		return int64(f), nil
	}
	return 0, fmt.Errorf("%v is not a number", v)
}

// fragment renders obj without its children for error messages.
func fragment(obj Object) string {
	shallow := make(Object, len(obj))
	for k, v := range obj {
		if k != "children" {
			shallow[k] = v
		}
	}
	b, err := json.Marshal(shallow)
	if err != nil {
		return fmt.Sprintf("%v", shallow)
	}
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
