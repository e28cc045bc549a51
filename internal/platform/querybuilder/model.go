package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

func structValue(model any) (reflect.Value, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("model cannot be nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("model must be a struct, got %s", v.Kind())
	}
	return v, nil
}

// dbColumn returns the column named by an exported field's db tag.
func dbColumn(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
	name = strings.TrimSpace(name)
	return name, name != "" && name != "-"
}

func columnsOf(model any) ([]string, error) {
	v, err := structValue(model)
	if err != nil {
		return nil, err
	}
	var cols []string
	for _, f := range reflect.VisibleFields(v.Type()) {
		if col, ok := dbColumn(f); ok {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("model %s has no db columns", v.Type())
	}
	return cols, nil
}

func valuesOf(model any, want int) ([]any, error) {
	v, err := structValue(model)
	if err != nil {
		return nil, err
	}
	vals := make([]any, 0, want)
	for _, f := range reflect.VisibleFields(v.Type()) {
		if _, ok := dbColumn(f); ok {
			vals = append(vals, v.FieldByIndex(f.Index).Interface())
		}
	}
	if len(vals) != want {
		return nil, fmt.Errorf("model %s has %d db columns, want %d", v.Type(), len(vals), want)
	}
	return vals, nil
}
