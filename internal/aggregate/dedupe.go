// Package aggregate folds flat one-to-many join rows into nested records.
// The relational store returns one row per (entity, collaborator) pair;
// clients want one record per entity with the collaborators merged into a
// list, so the fold happens in memory after the full row-set is read.
package aggregate

// DedupeMerge collapses records sharing the same value of the key field
// into a single record. The first record seen for a key supplies every
// field except the merge field, which is replaced by the ordered list of
// merge-field values from all records with that key. Values are appended
// in input order and are not deduplicated within the list. Output records
// appear in order of first appearance of their key.
//
// Example, keyed on "b" merging "a":
//
//	[{a:1,b:2,c:3},{a:2,b:2,c:3},{a:3,b:3,c:4}]
//	-> [{a:[1,2],b:2,c:3},{a:[3],b:3,c:4}]
func DedupeMerge(records []map[string]any, key, merge string) []map[string]any {
	result := make([]map[string]any, 0, len(records))
	indexByKey := make(map[any]int)

	for _, record := range records {
		keyValue := record[key]
		if i, seen := indexByKey[keyValue]; seen {
			result[i][merge] = append(result[i][merge].([]any), record[merge])
			continue
		}

		merged := make(map[string]any, len(record))
		for k, v := range record {
			merged[k] = v
		}
		merged[merge] = []any{record[merge]}
		indexByKey[keyValue] = len(result)
		result = append(result, merged)
	}

	return result
}
