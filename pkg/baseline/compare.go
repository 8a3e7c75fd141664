package baseline

// DiffEntry is one side-by-side comparison result. A nil Left means the
// secret was added in the new baseline; a nil Right means it was removed.
type DiffEntry struct {
	Filename string
	Left     *PotentialSecret
	Right    *PotentialSecret
}

// Added reports whether this entry only exists in the new baseline.
func (d DiffEntry) Added() bool { return d.Left == nil }

// Secret returns whichever side is present.
func (d DiffEntry) Secret() *PotentialSecret {
	if d.Left != nil {
		return d.Left
	}
	return d.Right
}

// Compare walks two collections in lockstep and returns the entries unique to
// each side. Both collections must come from the same codebase snapshot, so
// secrets are only ever added or removed, never moved.
//
// The walk relies on the (filename, line, hash) ordering invariant. When both
// sides reach the same hash, the runs of duplicate hashes on each side are
// advanced together: the same value detected by several plugins counts once.
func Compare(old, new *Collection) ([]DiffEntry, error) {
	left := old.All()
	right := new.All()

	var entries []DiffEntry
	var li, ri int

	takeLeft := func() {
		entries = append(entries, DiffEntry{Filename: left[li].Filename, Left: left[li]})
		li++
	}
	takeRight := func() {
		entries = append(entries, DiffEntry{Filename: right[ri].Filename, Right: right[ri]})
		ri++
	}

	for li < len(left) || ri < len(right) {
		if li >= len(left) {
			takeRight()
			continue
		}
		if ri >= len(right) {
			takeLeft()
			continue
		}

		l, r := left[li], right[ri]
		if l.LineNumber == 0 || r.LineNumber == 0 {
			return nil, ErrNoLineNumber
		}

		// Different files: everything remaining in the lesser file is
		// unique to its side.
		if l.Filename < r.Filename {
			takeLeft()
			continue
		}
		if l.Filename > r.Filename {
			takeRight()
			continue
		}

		// Same file: show by combined line order.
		if l.LineNumber < r.LineNumber {
			takeLeft()
			continue
		}
		if l.LineNumber > r.LineNumber {
			takeRight()
			continue
		}

		// Same line: order by hash so the walk stays deterministic.
		if l.SecretHash < r.SecretHash {
			takeLeft()
			continue
		}
		if l.SecretHash > r.SecretHash {
			takeRight()
			continue
		}

		// Same value on both sides. Skip the duplicate-hash run on each
		// side (the value may have been caught by multiple detectors).
		hash := l.SecretHash
		for li < len(left) && left[li].SecretHash == hash && left[li].Filename == l.Filename {
			li++
		}
		for ri < len(right) && right[ri].SecretHash == hash && right[ri].Filename == r.Filename {
			ri++
		}
	}

	return entries, nil
}
