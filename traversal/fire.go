package traversal

// phase returns which pass of a fire helper owns v: 0 for the begin span,
// 1 for values reached only by full sweeps, 2 for the end span, -1 for
// values the step never touched.
func phase(tr Traversal[int], v int) int {
	switch {
	case tr.Begin.Contains(v, tr.Interval):
		return 0
	case tr.End.Contains(v, tr.Interval):
		return 2
	case tr.FullSweepCount > 0:
		return 1
	default:
		return -1
	}
}

// FireAtMostOnce calls fire once for every key whose index the traversal
// touched, however many times it was touched. Keys are visited in the
// order the step reached them: begin span, full sweeps, end span; keys
// should be sorted by index.
func FireAtMostOnce[K any](tr Traversal[int], keys []K, index func(K) int, fire func(K)) {
	for p := 0; p <= 2; p++ {
		for _, k := range keys {
			if phase(tr, index(k)) == p {
				fire(k)
			}
		}
	}
}

// FireWithMultiplicity calls fire once per touched key along with the
// number of times the step crossed it.
func FireWithMultiplicity[K any](tr Traversal[int], keys []K, index func(K) int, fire func(K, Count)) {
	for p := 0; p <= 2; p++ {
		for _, k := range keys {
			i := index(k)
			if phase(tr, i) != p {
				continue
			}
			if n := tr.Multiplicity(i); n > 0 {
				fire(k, n)
			}
		}
	}
}

// VisitIndices walks every index the traversal touched, in order, once per
// touch.
func VisitIndices(tr Traversal[int], length int, visit func(int)) {
	walk := func(a, b int) {
		for i := a; i <= b; i++ {
			visit(i)
		}
	}

	if tr.Begin.Valid {
		walk(tr.Begin.Lo, tr.Begin.Hi)
	}
	for s := Count(0); s < tr.FullSweepCount; s++ {
		walk(0, length-1)
	}
	if tr.End.Valid {
		walk(tr.End.Lo, tr.End.Hi)
	}
}
