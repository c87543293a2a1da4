// Package dedup filters freshly generated items against identifiers that are
// already persisted, so a regenerate-with-more-items call cannot commit the
// same item twice. It only guards exact identifier collisions; semantically
// similar items with different identifiers pass through untouched.
package dedup

// Keys builds a lookup set from a list of identifier strings.
func Keys(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Filter returns the candidates whose key is not present in existing.
// Order is preserved. Duplicates inside the candidate batch itself are also
// collapsed (first occurrence wins).
func Filter[T any](candidates []T, key func(T) string, existing map[string]struct{}) []T {
	result := make([]T, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		k := key(c)
		if _, ok := existing[k]; ok {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, c)
	}
	return result
}
