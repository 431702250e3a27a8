package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModels builds one multi-row INSERT from structs tagged with `db`.
// Columns come from the first row; every row must share its type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert %s: no rows", table)
	}

	builder := InsertInto(table).Suffix(suffix)
	var rowType reflect.Type
	for i, model := range models {
		value, err := structValue(model)
		if err != nil {
			return "", nil, fmt.Errorf("row %d: %w", i, err)
		}
		if i == 0 {
			rowType = value.Type()
			cols := columnsOf(rowType)
			if len(cols) == 0 {
				return "", nil, fmt.Errorf("model has no db columns")
			}
			builder.Columns(cols...)
		} else if value.Type() != rowType {
			return "", nil, fmt.Errorf("row %d: got %s, want %s", i, value.Type(), rowType)
		}
		builder.Values(valuesOf(value)...)
	}
	return builder.ToSQL()
}

// InsertModel is InsertModels for a single row.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	return InsertModels(table, []any{model}, suffix)
}

// Columns lists the db columns of model in field order, for SELECT lists
// that scan back into the same struct.
func Columns(model any) ([]string, error) {
	value, err := structValue(model)
	if err != nil {
		return nil, err
	}
	cols := columnsOf(value.Type())
	if len(cols) == 0 {
		return nil, fmt.Errorf("model has no db columns")
	}
	return cols, nil
}

func structValue(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return reflect.Value{}, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("model must be struct, got %s", value.Kind())
	}
	return value, nil
}

func columnsOf(typ reflect.Type) []string {
	cols := make([]string, 0, typ.NumField())
	for i := range typ.NumField() {
		if col, ok := dbColumn(typ.Field(i)); ok {
			cols = append(cols, col)
		}
	}
	return cols
}

func valuesOf(value reflect.Value) []any {
	typ := value.Type()
	vals := make([]any, 0, typ.NumField())
	for i := range typ.NumField() {
		if _, ok := dbColumn(typ.Field(i)); ok {
			vals = append(vals, value.Field(i).Interface())
		}
	}
	return vals
}

func dbColumn(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	col := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
	if col == "" || col == "-" {
		return "", false
	}
	return col, true
}
