package github

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"daily-log/internal/domain"
)

// Codec serializes a domain.Table to the persisted CSV form and back.
type Codec struct {
	mapper *domain.RecordMapper
}

// NewCodec creates a new Codec instance.
func NewCodec() *Codec {
	return &Codec{mapper: domain.NewRecordMapper()}
}

// Encode renders the table as CSV with the fixed 16-column header.
func (c *Codec) Encode(table *domain.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(domain.Columns()); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, entry := range table.Rows() {
		if err := w.Write(c.mapper.ToRecord(entry)); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses CSV bytes into a table. Column positions come from the
// file's own header row, so column reordering in the remote file is
// harmless. Empty content decodes to an empty table.
func (c *Codec) Decode(data []byte) (*domain.Table, error) {
	table := domain.NewTable()
	if len(bytes.TrimSpace(data)) == 0 {
		return table, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return table, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[col] = i
	}

	for i, record := range records[1:] {
		entry, err := c.mapper.FromRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		table.Append(entry)
	}
	return table, nil
}
