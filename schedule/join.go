package schedule

// Row is one relational record: field name to value. Join keys are opaque
// strings compared exactly, with no normalization.
type Row map[string]string

// JoinKind selects how unmatched left rows are treated.
type JoinKind int

const (
	// InnerJoin drops left rows with no match on the right.
	InnerJoin JoinKind = iota
	// LeftJoin keeps unmatched left rows without any carry fields.
	LeftJoin
	// RightJoin keeps unmatched right rows; implemented by swapping the
	// operands and delegating to LeftJoin.
	RightJoin
)

// Join combines left and right on keyField. For each left row the first
// right row with an equal key is taken; the result is the left row's fields
// plus those carry fields actually present on the matched right row (absent
// fields are omitted, not defaulted). Output order is left input order,
// minus dropped rows for InnerJoin.
//
// Matching is a linear scan, O(len(left) * len(right)). The static tables
// involved are hundreds to low thousands of rows, where the scan is cheap;
// an index by key could be substituted without changing observable behavior.
func Join(kind JoinKind, keyField string, left, right []Row, carry []string) []Row {
	if kind == RightJoin {
		return Join(LeftJoin, keyField, right, left, carry)
	}

	out := make([]Row, 0, len(left))
	for _, l := range left {
		match, ok := firstMatch(right, keyField, l[keyField])
		if !ok {
			if kind == LeftJoin {
				out = append(out, cloneRow(l))
			}
			continue
		}
		merged := cloneRow(l)
		for _, f := range carry {
			if v, present := match[f]; present {
				merged[f] = v
			}
		}
		out = append(out, merged)
	}
	return out
}

func firstMatch(rows []Row, keyField, key string) (Row, bool) {
	for _, r := range rows {
		if r[keyField] == key {
			return r, true
		}
	}
	return nil, false
}

func cloneRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
