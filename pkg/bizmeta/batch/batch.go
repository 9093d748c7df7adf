package batch

import (
	"finsem-hq/bizgate/pkg/bizmeta/record"
)

// Batch is the full set of records submitted to one gate run together
// with its read-only index. A Batch is built once and is safe for
// concurrent readers.
type Batch struct {
	records []record.Record
	index   *Index
}

// New copies records into a batch and builds its index.
func New(records []record.Record) *Batch {
	rs := make([]record.Record, len(records))
	copy(rs, records)
	return &Batch{
		records: rs,
		index:   buildIndex(rs),
	}
}

// Len returns the number of records, duplicates included.
func (b *Batch) Len() int {
	return len(b.records)
}

// Records returns the records in load order. Callers must not modify
// the returned slice.
func (b *Batch) Records() []record.Record {
	return b.records
}

// At returns a pointer to the i-th record.
func (b *Batch) At(i int) *record.Record {
	return &b.records[i]
}

// Index returns the lookup structures of the batch.
func (b *Batch) Index() *Index {
	return b.index
}

// Lookup returns the first record with the given tenant and code.
func (b *Batch) Lookup(tenantID, code string) (*record.Record, bool) {
	i, ok := b.index.first[record.Key{TenantID: tenantID, Code: code}]
	if !ok {
		return nil, false
	}
	return &b.records[i], true
}

// Contains reports whether a record with the given tenant and code exists.
func (b *Batch) Contains(tenantID, code string) bool {
	_, ok := b.index.first[record.Key{TenantID: tenantID, Code: code}]
	return ok
}

// FirstOccurrence returns the position of the first record sharing the
// key of record i. It returns i itself when record i is the first, and
// -1 when record i has no tenant or code and was therefore not indexed.
func (b *Batch) FirstOccurrence(i int) int {
	r := &b.records[i]
	first, ok := b.index.first[r.Key()]
	if !ok {
		return -1
	}
	return first
}

// IsDuplicate reports whether record i repeats the key of an earlier record.
func (b *Batch) IsDuplicate(i int) bool {
	first := b.FirstOccurrence(i)
	return first >= 0 && first != i
}

// HasCodeWithPrefix reports whether the tenant has a code starting with
// prefix, other than exclude.
func (b *Batch) HasCodeWithPrefix(tenantID, prefix, exclude string) bool {
	return b.index.hasPrefix(tenantID, prefix, exclude)
}

// Tenants returns the indexed tenant IDs in sorted order.
func (b *Batch) Tenants() []string {
	return b.index.tenants()
}
