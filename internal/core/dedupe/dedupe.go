package dedupe

// Keyed is anything that belongs to a course.
type Keyed interface {
	Key() string
}

// FirstByKey scans items in order and keeps the first occurrence of each key,
// stopping once limit distinct keys are collected. Callers pass items ranked
// best-first, so the surviving instance is the best-ranked one. A limit <= 0
// keeps every distinct key.
func FirstByKey[T any](items []T, key func(T) string, limit int) []T {
	seen := make(map[string]struct{}, len(items))
	unique := make([]T, 0, min(len(items), max(limit, 0)))

	for _, it := range items {
		k := key(it)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, it)
		if limit > 0 && len(unique) >= limit {
			break
		}
	}
	return unique
}

// ByKey is FirstByKey for types that expose their own key.
func ByKey[T Keyed](items []T, limit int) []T {
	return FirstByKey(items, func(it T) string { return it.Key() }, limit)
}
