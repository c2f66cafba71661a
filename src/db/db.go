package db

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/oops"
	"github.com/google/uuid"
)

/*
A general error to be used when no results are found. This is the error
returned by QueryOne, and can generally be used by other database helpers
that fetch a single result but find nothing.
*/
var NotFound = errors.New("not found")

/*
Performs a SQL query and returns a slice of all the result rows, mapped into
the given struct type via `db:"column"` tags. The special token $columns in
the query is replaced by the full list of tagged columns, in field order.

Write $columns{alias} to qualify every column with a table alias. Embedded
structs with a db tag contribute their tag as an alias prefix; embedded
structs without a tag are flattened in place.

Any SQL may be performed, including INSERT and UPDATE, as long as it returns
a result set. If you do not care about the result set, call Exec directly on
your connection instead.
*/
func Query[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) ([]*T, error) {
	var destExample T
	destType := reflect.TypeOf(destExample)

	compiled := compileQuery(query, destType)

	rows, err := conn.Query(ctx, compiled.query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*T
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, oops.New(err, "failed to read row values")
		}

		dest := new(T)
		if err := scanRow(compiled, reflect.ValueOf(dest), vals); err != nil {
			return nil, err
		}
		result = append(result, dest)
	}
	if rows.Err() != nil {
		return nil, oops.New(rows.Err(), "error while iterating through db results")
	}

	return result, nil
}

/*
Identical to Query, but returns only the first result row. If there are no
rows in the result set, returns NotFound.
*/
func QueryOne[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) (*T, error) {
	rows, err := Query[T](ctx, conn, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NotFound
	}
	return rows[0], nil
}

/*
Identical to Query, but returns concrete values instead of pointers. More
convenient for primitive types.
*/
func QueryScalar[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) ([]T, error) {
	rows, err := Query[T](ctx, conn, query, args...)
	if err != nil {
		return nil, err
	}
	result := make([]T, len(rows))
	for i, row := range rows {
		result[i] = *row
	}
	return result, nil
}

/*
Identical to QueryScalar, but returns only the first result value. If there
are no rows in the result set, returns NotFound.
*/
func QueryOneScalar[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) (T, error) {
	row, err := QueryOne[T](ctx, conn, query, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return *row, nil
}

type compiledQuery struct {
	query      string
	destType   reflect.Type
	scalar     bool
	fieldPaths [][]int
}

var reColumnsPlaceholder = regexp.MustCompile(`\$columns({(.*?)})?`)

func compileQuery(query string, destType reflect.Type) compiledQuery {
	columnsMatch := reColumnsPlaceholder.FindStringSubmatch(query)

	if columnsMatch == nil {
		return compiledQuery{
			query:    query,
			destType: destType,
			scalar:   typeIsQueryable(destType),
		}
	}

	// The presence of the $columns placeholder means that the destination
	// type must be a struct, and we plonk that struct's fields into the
	// query.
	if destType.Kind() != reflect.Struct || typeIsQueryable(destType) {
		panic("$columns can only be used when querying into a struct")
	}

	var prefix []string
	if prefixText := columnsMatch[2]; prefixText != "" {
		prefix = []string{prefixText}
	}

	columnNames, fieldPaths := getColumnNamesAndPaths(destType, nil, prefix)

	query = reColumnsPlaceholder.ReplaceAllString(query, strings.Join(columnNames, ", "))

	return compiledQuery{
		query:      query,
		destType:   destType,
		fieldPaths: fieldPaths,
	}
}

func getColumnNamesAndPaths(destType reflect.Type, pathSoFar []int, prefix []string) ([]string, [][]int) {
	var columnNames []string
	var fieldPaths [][]int

	if destType.Kind() == reflect.Ptr {
		destType = destType.Elem()
	}

	if destType.Kind() != reflect.Struct {
		panic(oops.New(nil, "can only get column names and paths from a struct, got type '%v' (at prefix '%v')", destType.Name(), prefix))
	}

	for i := 0; i < destType.NumField(); i++ {
		field := destType.Field(i)
		path := append(append([]int{}, pathSoFar...), i)
		tag := field.Tag.Get("db")

		if field.Anonymous {
			// Embedded structs with a tag get it as an alias prefix;
			// untagged ones are flattened in place.
			fieldPrefix := prefix
			if tag != "" {
				fieldPrefix = append(append([]string{}, prefix...), tag)
			}
			subCols, subPaths := getColumnNamesAndPaths(field.Type, path, fieldPrefix)
			columnNames = append(columnNames, subCols...)
			fieldPaths = append(fieldPaths, subPaths...)
			continue
		}

		if tag == "" {
			continue
		}

		fieldType := field.Type
		if fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}

		if typeIsQueryable(fieldType) {
			alias := strings.Join(prefix, "_")
			fullName := tag
			if alias != "" {
				fullName = alias + "." + tag
			}
			columnNames = append(columnNames, fullName)
			fieldPaths = append(fieldPaths, path)
		} else if fieldType.Kind() == reflect.Struct {
			subCols, subPaths := getColumnNamesAndPaths(fieldType, path, append(append([]string{}, prefix...), tag))
			columnNames = append(columnNames, subCols...)
			fieldPaths = append(fieldPaths, subPaths...)
		} else {
			panic(oops.New(nil, "field '%s' in type %s has invalid type '%s'", field.Name, destType, field.Type))
		}
	}

	return columnNames, fieldPaths
}

/*
Checks if we are able to map a single database column directly into this
type. Structs generally get broken down into their fields, except for the
handful of struct types that pgx returns whole.
*/
func typeIsQueryable(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct:
		return t == reflect.TypeOf(time.Time{}) || t == reflect.TypeOf(uuid.UUID{})
	case reflect.Slice:
		return t.Elem().Kind() == reflect.Uint8 // []byte
	default:
		return true
	}
}

func scanRow(compiled compiledQuery, destPtr reflect.Value, vals []any) error {
	if compiled.scalar {
		if len(vals) != 1 {
			return oops.New(nil, "tried to query a scalar value, but got %d values in the row", len(vals))
		}
		return setValueFromDB(destPtr.Elem(), vals[0])
	}

	if len(vals) != len(compiled.fieldPaths) {
		return oops.New(nil, "mismatch between query columns (%d) and destination fields (%d)", len(vals), len(compiled.fieldPaths))
	}

	for i, val := range vals {
		if val == nil {
			continue
		}

		field := followPathThroughStructs(destPtr, compiled.fieldPaths[i])
		if field.Kind() == reflect.Ptr {
			field.Set(reflect.New(field.Type().Elem()))
			field = field.Elem()
		}
		if err := setValueFromDB(field, val); err != nil {
			return err
		}
	}

	return nil
}

func setValueFromDB(dest reflect.Value, val any) error {
	v := reflect.ValueOf(val)

	// Some values still come through as pointers (like net.IPNet). We know
	// the value is not nil, so we can get at the contents.
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch {
	case v.Type() == dest.Type():
		dest.Set(v)
	case v.Type().ConvertibleTo(dest.Type()):
		dest.Set(v.Convert(dest.Type()))
	default:
		return oops.New(nil, "cannot assign db value of type %s to destination of type %s", v.Type(), dest.Type())
	}

	return nil
}

func followPathThroughStructs(structPtrVal reflect.Value, path []int) reflect.Value {
	if len(path) < 1 {
		panic(oops.New(nil, "can't follow an empty path"))
	}

	val := structPtrVal
	for _, i := range path {
		if val.Kind() == reflect.Ptr && val.Type().Elem().Kind() == reflect.Struct {
			if val.IsNil() {
				val.Set(reflect.New(val.Type().Elem()))
			}
			val = val.Elem()
		}
		val = val.Field(i)
	}

	return val
}
