package reconcile

import "fmt"

// Merge left-joins every auxiliary source onto the identity source.
//
// Every identity record survives into the output, in its original order,
// whether or not any auxiliary source matches it. Auxiliary records whose
// key is absent from the identity source are excluded and counted as
// orphans. When the same field arrives from two sources, the identity
// value wins unless it is null or empty; among auxiliary sources the
// first declared one wins, because later sources only fill fields that
// are still empty.
func Merge(identity Source, aux ...Source) ([]Row, Stats, error) {
	stats := Stats{
		MatchedBySource: make(map[string]int),
		OrphansBySource: make(map[string]int),
	}

	identityKeys, err := keySet(identity)
	if err != nil {
		return nil, stats, err
	}
	stats.IdentityRows = len(identity.Records)

	// Seed output rows from the identity source, preserving its order.
	rows := make([]Row, 0, len(identity.Records))
	byKey := make(map[string]int, len(identity.Records))
	for _, rec := range identity.Records {
		row := Row{
			Key:     rec.Key,
			Fields:  make(map[string]any, len(rec.Fields)),
			Sources: []string{identity.Name},
		}
		for f, v := range rec.Fields {
			row.Fields[f] = v
		}
		byKey[rec.Key] = len(rows)
		rows = append(rows, row)
	}

	for _, src := range aux {
		index, err := buildIndex(src)
		if err != nil {
			return nil, stats, err
		}

		for key, rec := range index {
			if _, ok := identityKeys[key]; !ok {
				stats.OrphansBySource[src.Name]++
				continue
			}

			row := &rows[byKey[key]]
			row.Sources = append(row.Sources, src.Name)
			stats.MatchedBySource[src.Name]++

			for f, v := range rec.Fields {
				if isEmpty(v) {
					continue
				}
				if isEmpty(row.Fields[f]) {
					row.Fields[f] = v
					stats.FilledFields++
				}
			}
		}
	}

	return rows, stats, nil
}

// buildIndex maps a source's records by key, verifying the per-source
// key-uniqueness invariant.
func buildIndex(src Source) (map[string]Record, error) {
	index := make(map[string]Record, len(src.Records))
	for _, rec := range src.Records {
		if rec.Key == "" {
			return nil, fmt.Errorf("%w: source %s", ErrMissingKey, src.Name)
		}
		if _, exists := index[rec.Key]; exists {
			return nil, fmt.Errorf("%w: source %s key %q", ErrDuplicateKey, src.Name, rec.Key)
		}
		index[rec.Key] = rec
	}
	return index, nil
}

func keySet(src Source) (map[string]struct{}, error) {
	keys := make(map[string]struct{}, len(src.Records))
	for _, rec := range src.Records {
		if rec.Key == "" {
			return nil, fmt.Errorf("%w: source %s", ErrMissingKey, src.Name)
		}
		if _, exists := keys[rec.Key]; exists {
			return nil, fmt.Errorf("%w: source %s key %q", ErrDuplicateKey, src.Name, rec.Key)
		}
		keys[rec.Key] = struct{}{}
	}
	return keys, nil
}

// isEmpty reports whether a value counts as null for merge purposes.
// Numeric zero is a real value, not an absence.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	default:
		return false
	}
}
