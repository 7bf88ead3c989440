package table

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Arrow conversion for the serving layer. Column types are inferred from
// the cells actually present: integer, float, bool and timestamp columns
// are detected, anything mixed or unrecognized falls back to string.

// columnKind is the inferred Arrow type for a column.
type columnKind int

const (
	kindUnset columnKind = iota
	kindInt
	kindFloat
	kindBool
	kindTime
	kindString
)

// inferKind folds a cell into a column's running kind.
func inferKind(kind columnKind, v any) columnKind {
	if v == nil {
		return kind
	}
	var cell columnKind
	switch v.(type) {
	case int, int32, int64:
		cell = kindInt
	case float32, float64:
		cell = kindFloat
	case bool:
		cell = kindBool
	case time.Time:
		cell = kindTime
	default:
		cell = kindString
	}

	switch {
	case kind == kindUnset:
		return cell
	case kind == cell:
		return kind
	case kind == kindInt && cell == kindFloat, kind == kindFloat && cell == kindInt:
		return kindFloat
	default:
		return kindString
	}
}

func (k columnKind) arrowType() arrow.DataType {
	switch k {
	case kindInt:
		return arrow.PrimitiveTypes.Int64
	case kindFloat:
		return arrow.PrimitiveTypes.Float64
	case kindBool:
		return arrow.FixedWidthTypes.Boolean
	case kindTime:
		return arrow.FixedWidthTypes.Timestamp_ms
	default:
		return arrow.BinaryTypes.String
	}
}

// ArrowSchema infers the Arrow schema for the table.
func (t *Table) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, len(t.Columns))
	for i, col := range t.Columns {
		kind := kindUnset
		for _, row := range t.Rows {
			kind = inferKind(kind, row[col])
			if kind == kindString {
				break
			}
		}
		fields[i] = arrow.Field{Name: col, Type: kind.arrowType(), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

// ToArrow converts the table to a single Arrow record batch.
// The caller must Release() the returned batch.
func (t *Table) ToArrow(allocator memory.Allocator) (arrow.RecordBatch, error) {
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}
	schema := t.ArrowSchema()
	builder := array.NewRecordBuilder(allocator, schema)
	defer builder.Release()

	for i, col := range t.Columns {
		field := builder.Field(i)
		for _, row := range t.Rows {
			if err := appendCell(field, row[col]); err != nil {
				return nil, fmt.Errorf("table: column %q: %w", col, err)
			}
		}
	}
	return builder.NewRecordBatch(), nil
}

// appendCell appends one cell to a column builder, coercing to the
// builder's type. Cells that cannot be coerced become nulls.
func appendCell(field array.Builder, v any) error {
	if v == nil {
		field.AppendNull()
		return nil
	}
	switch b := field.(type) {
	case *array.Int64Builder:
		f, ok := AsNumber(v)
		if !ok {
			b.AppendNull()
			return nil
		}
		b.Append(int64(f))
	case *array.Float64Builder:
		f, ok := AsNumber(v)
		if !ok {
			b.AppendNull()
			return nil
		}
		b.Append(f)
	case *array.BooleanBuilder:
		bv, ok := v.(bool)
		if !ok {
			b.AppendNull()
			return nil
		}
		b.Append(bv)
	case *array.TimestampBuilder:
		ts, ok := AsTime(v)
		if !ok {
			b.AppendNull()
			return nil
		}
		b.Append(arrow.Timestamp(ts.UnixMilli()))
	case *array.StringBuilder:
		s, ok := AsString(v)
		if !ok {
			b.AppendNull()
			return nil
		}
		b.Append(s)
	default:
		return fmt.Errorf("unsupported builder type %T", field)
	}
	return nil
}

// FromRecord converts an Arrow record batch back into a table.
// The record is read but not retained; the caller keeps ownership.
func FromRecord(rec arrow.RecordBatch) *Table {
	schema := rec.Schema()
	t := New(make([]string, schema.NumFields())...)
	for i := 0; i < schema.NumFields(); i++ {
		t.Columns[i] = schema.Field(i).Name
	}

	numRows := int(rec.NumRows())
	t.Rows = make([]Row, numRows)
	for i := range t.Rows {
		t.Rows[i] = make(Row, len(t.Columns))
	}

	for c, col := range t.Columns {
		arr := rec.Column(c)
		for i := 0; i < numRows; i++ {
			if arr.IsNull(i) {
				t.Rows[i][col] = nil
				continue
			}
			t.Rows[i][col] = arrowValue(arr, i)
		}
	}
	return t
}

// FromReader drains a record reader into a single table.
func FromReader(reader array.RecordReader) (*Table, error) {
	var out *Table
	for reader.Next() {
		part := FromRecord(reader.RecordBatch())
		if out == nil {
			out = part
			continue
		}
		out.Append(part.Rows...)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("table: record reader: %w", err)
	}
	if out == nil {
		out = New()
	}
	return out, nil
}

// arrowValue extracts a single non-null array value as a Go value.
func arrowValue(arr arrow.Array, i int) any {
	switch a := arr.(type) {
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Timestamp:
		dt := a.DataType().(*arrow.TimestampType)
		return a.Value(i).ToTime(dt.Unit)
	case *array.Date32:
		return a.Value(i).ToTime()
	case *array.Date64:
		return a.Value(i).ToTime()
	default:
		return arr.ValueStr(i)
	}
}
