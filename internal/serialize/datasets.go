// Package serialize turns the dataset registry into an Arrow IPC listing.
// Used by ListFlights so clients can discover datasets without querying.
package serialize

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/statline-lab/statline-go/registry"
)

// listingSchema is the datasets listing record layout. List-valued entry
// fields are comma-joined; the listing is discovery metadata, not data.
var listingSchema = arrow.NewSchema([]arrow.Field{
	{Name: "dataset", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "keys", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "supported_filters", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "leagues", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "sources", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "requires_game_id", Type: arrow.FixedWidthTypes.Boolean, Nullable: false},
}, nil)

// Datasets serializes the registry's entries to an Arrow IPC stream.
func Datasets(reg *registry.Registry, allocator memory.Allocator) ([]byte, error) {
	builder := array.NewRecordBuilder(allocator, listingSchema)
	defer builder.Release()

	datasetB := builder.Field(0).(*array.StringBuilder)
	keysB := builder.Field(1).(*array.StringBuilder)
	filtersB := builder.Field(2).(*array.StringBuilder)
	leaguesB := builder.Field(3).(*array.StringBuilder)
	sourcesB := builder.Field(4).(*array.StringBuilder)
	requiresB := builder.Field(5).(*array.BooleanBuilder)

	for _, entry := range reg.Entries() {
		datasetB.Append(entry.ID)
		keysB.Append(strings.Join(entry.Keys, ","))
		filtersB.Append(strings.Join(entry.SupportedFilters, ","))
		if len(entry.SupportedLeagues) == 0 {
			leaguesB.AppendNull()
		} else {
			names := make([]string, len(entry.SupportedLeagues))
			for i, l := range entry.SupportedLeagues {
				names[i] = string(l)
			}
			leaguesB.Append(strings.Join(names, ","))
		}
		if len(entry.Sources) == 0 {
			sourcesB.AppendNull()
		} else {
			sourcesB.Append(strings.Join(entry.Sources, ","))
		}
		requiresB.Append(entry.RequiresGameID)
	}

	record := builder.NewRecordBatch()
	defer record.Release()

	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(listingSchema), ipc.WithAllocator(allocator))
	if err := writer.Write(record); err != nil {
		writer.Close()
		return nil, fmt.Errorf("write listing record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close listing writer: %w", err)
	}

	return buf.Bytes(), nil
}
