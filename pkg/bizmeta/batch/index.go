package batch

import (
	"sort"
	"strings"

	"finsem-hq/bizgate/pkg/bizmeta/record"
)

// Index holds the lookup structures of a batch: the first position of
// every (tenant_id, code) key and, per tenant, the sorted distinct codes
// used for parent and completeness prefix queries.
//
// Records with an empty tenant or code are not indexed; the basic rule
// reports them instead.
type Index struct {
	first  map[record.Key]int
	counts map[record.Key]int
	codes  map[string][]string
}

func buildIndex(records []record.Record) *Index {
	idx := &Index{
		first:  make(map[record.Key]int, len(records)),
		counts: make(map[record.Key]int, len(records)),
		codes:  make(map[string][]string),
	}

	for i := range records {
		r := &records[i]
		if r.TenantID == "" || r.Code == "" {
			continue
		}
		key := r.Key()
		idx.counts[key]++
		if _, seen := idx.first[key]; seen {
			continue
		}
		idx.first[key] = i
		idx.codes[r.TenantID] = append(idx.codes[r.TenantID], r.Code)
	}

	for _, codes := range idx.codes {
		sort.Strings(codes)
	}
	return idx
}

// Size returns the number of distinct keys.
func (idx *Index) Size() int {
	return len(idx.first)
}

// Occurrences returns how many records share the key.
func (idx *Index) Occurrences(key record.Key) int {
	return idx.counts[key]
}

// Codes returns the sorted distinct codes of a tenant.
func (idx *Index) Codes(tenantID string) []string {
	return idx.codes[tenantID]
}

func (idx *Index) hasPrefix(tenantID, prefix, exclude string) bool {
	codes := idx.codes[tenantID]
	i := sort.SearchStrings(codes, prefix)
	for ; i < len(codes) && strings.HasPrefix(codes[i], prefix); i++ {
		if codes[i] != exclude {
			return true
		}
	}
	return false
}

func (idx *Index) tenants() []string {
	out := make([]string, 0, len(idx.codes))
	for t := range idx.codes {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
