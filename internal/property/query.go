package property

// Query filters records against the given criteria. When privileged is
// false, unpublished records are dropped before any criterion applies.
//
// The result preserves the input order (the store's most-recent-first
// order); Query never sorts. It is deterministic and side-effect-free:
// the same inputs always yield element-wise-equal results. Query does
// not own the collection — callers re-invoke it when records or
// criteria change.
func Query(records []Property, c Criteria, privileged bool) []Property {
	match := BuildPredicate(c)

	out := make([]Property, 0, len(records))
	for _, p := range records {
		if !privileged && !p.IsPublished {
			continue
		}
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}
