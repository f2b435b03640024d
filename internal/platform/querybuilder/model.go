package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// UpsertModels inserts every model as one row and overwrites non-key
// columns on conflict. All models must share the same struct type.
func UpsertModels(table string, conflict []string, models ...any) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("at least one model is required")
	}

	b := InsertInto(table)
	var firstCols []string
	for i, model := range models {
		cols, vals, err := columnsAndValuesFromModel(model)
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			firstCols = cols
			b.Columns(cols...)
		} else if strings.Join(cols, ",") != strings.Join(firstCols, ",") {
			return "", nil, fmt.Errorf("model %d columns differ from model 0", i)
		}
		b.Values(vals...)
	}

	if len(conflict) > 0 {
		b.OnConflict(conflict...).DoUpdate()
	}
	return b.ToSQL()
}

// modelColumn is one writable db column of a model struct.
type modelColumn struct {
	name  string
	index int
}

// columnPlans caches the writable columns per struct type; batches reuse
// one plan for every row.
var columnPlans sync.Map // reflect.Type -> []modelColumn

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	plan := planFor(value.Type())
	if len(plan) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", value.Type())
	}
	cols := make([]string, len(plan))
	vals := make([]any, len(plan))
	for i, col := range plan {
		cols[i] = col.name
		vals[i] = value.Field(col.index).Interface()
	}
	return cols, vals, nil
}

func planFor(typ reflect.Type) []modelColumn {
	if cached, ok := columnPlans.Load(typ); ok {
		return cached.([]modelColumn)
	}

	var plan []modelColumn
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		// readonly columns are filled by the database (defaults, triggers).
		if name == "" || name == "-" || strings.Contains(opts, "readonly") {
			continue
		}
		plan = append(plan, modelColumn{name: name, index: i})
	}
	columnPlans.Store(typ, plan)
	return plan
}
