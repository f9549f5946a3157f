package traversal

import (
	"reflect"
	"testing"
)

func TestDiscrete(t *testing.T) {
	cases := []struct {
		name      string
		mode      Mode
		prev, cur int
		length    int
		seam      Count
		wantBegin Span[int]
		wantEnd   Span[int]
		wantSweep Count
		wantDir   Dir
	}{
		{"none_forward", None, 2, 5, 10, 0, Span[int]{true, 3, 5}, Span[int]{}, 0, Forward},
		{"none_backward", None, 5, 2, 10, 0, Span[int]{true, 2, 4}, Span[int]{}, 0, Backward},
		{"none_still", None, 4, 4, 10, 0, Span[int]{true, 5, 4}, Span[int]{}, 0, Forward},
		{"loop_no_seam", Loop, 1, 3, 4, 0, Span[int]{true, 2, 3}, Span[int]{}, 0, Forward},
		{"loop_seam", Loop, 5, 6, 10, 1, Span[int]{true, 6, 9}, Span[int]{true, 0, 6}, 0, Forward},
		{"loop_seam_from_last", Loop, 9, 2, 10, 1, Span[int]{}, Span[int]{true, 0, 2}, 0, Forward},
		{"loop_three_seams", Loop, 0, 2, 4, 3, Span[int]{true, 1, 3}, Span[int]{true, 0, 2}, 2, Forward},
		{"loop_backward_seam", Loop, 2, 7, 10, -1, Span[int]{true, 7, 9}, Span[int]{true, 0, 1}, 0, Backward},
		{"loop_backward_from_first", Loop, 0, 7, 10, -1, Span[int]{true, 7, 9}, Span[int]{}, 0, Backward},
		{"ping_pong_rising", PingPong, 1, 3, 5, 0, Span[int]{true, 2, 3}, Span[int]{}, 0, Forward},
		{"ping_pong_falling", PingPong, 4, 2, 5, 1, Span[int]{true, 2, 3}, Span[int]{}, 0, Backward},
		{"wraps_out_of_range_indices", None, 12, 15, 10, 0, Span[int]{true, 3, 5}, Span[int]{}, 0, Forward},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := Discrete(c.mode, c.prev, c.cur, c.length, c.seam)
			if tr.Begin != c.wantBegin {
				t.Fatalf("begin: expected %+v, got %+v", c.wantBegin, tr.Begin)
			}
			if tr.End != c.wantEnd {
				t.Fatalf("end: expected %+v, got %+v", c.wantEnd, tr.End)
			}
			if tr.FullSweepCount != c.wantSweep {
				t.Fatalf("sweeps: expected %d, got %d", c.wantSweep, tr.FullSweepCount)
			}
			if tr.Dir != c.wantDir {
				t.Fatalf("dir: expected %d, got %d", c.wantDir, tr.Dir)
			}
		})
	}
}

func TestDiscreteContains(t *testing.T) {
	tr := Discrete(Loop, 5, 6, 10, 1)
	for i := 0; i < 10; i++ {
		if !tr.Contains(i) {
			t.Fatalf("index %d should be reached when wrapping from 5 to 6", i)
		}
	}

	still := Discrete(None, 4, 4, 10, 0)
	if still.Contains(4) || !still.Any() {
		t.Fatalf("a still step owns an empty but valid span")
	}
}

func TestMultiLoopCatchUp(t *testing.T) {
	// 4 samples over 1s stepped by 3.5s in one tick.
	f := FoldLoop(0.0, 3.5, 1.0)
	cur := int(f.Pos * 4)
	tr := Discrete(Loop, 0, cur, 4, f.SeamCrossingCount)

	if tr.FullSweepCount < 2 {
		t.Fatalf("expected at least 2 full sweeps, got %d", tr.FullSweepCount)
	}
	for i := 0; i < 4; i++ {
		if !tr.Contains(i) {
			t.Fatalf("frame %d not contained", i)
		}
	}
}

func TestContinuous(t *testing.T) {
	cases := []struct {
		name      string
		mode      Mode
		prev, cur float64
		seam      Count
		cycle     Count
		in        []float64
		out       []float64
		wantSweep Count
	}{
		{"none", None, 0.2, 0.6, 0, 0, []float64{0.2, 0.5}, []float64{0.6, 0.7}, 0},
		{"loop_seam", Loop, 0.8, 0.1, 1, 1, []float64{0.8, 0.95, 0}, []float64{0.1, 0.5}, 0},
		{"loop_many", Loop, 0.8, 0.1, 3, 3, []float64{0.5}, nil, 2},
		{"loop_backward", Loop, 0.1, 0.8, -1, -1, []float64{0.9, 0.05}, []float64{0.5}, 0},
		{"ping_pong", PingPong, 0.2, 0.6, 0, 1, []float64{0.3}, nil, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := Continuous(c.mode, c.prev, c.cur, 1.0, c.seam, c.cycle)
			if tr.FullSweepCount != c.wantSweep {
				t.Fatalf("sweeps: expected %d, got %d", c.wantSweep, tr.FullSweepCount)
			}
			for _, v := range c.in {
				if !tr.Contains(v) {
					t.Fatalf("expected %v to be contained in %+v", v, tr)
				}
			}
			for _, v := range c.out {
				if tr.Contains(v) {
					t.Fatalf("expected %v outside %+v", v, tr)
				}
			}
		})
	}
}

type testKey struct {
	frame int
	name  string
}

func keyFrame(k testKey) int { return k.frame }

func TestFireAtMostOnceOrder(t *testing.T) {
	keys := []testKey{{1, "a"}, {5, "b"}, {8, "c"}}

	cases := []struct {
		name string
		tr   Traversal[int]
		want []string
	}{
		{"single_span", Discrete(None, 0, 6, 10, 0), []string{"a", "b"}},
		{"wrap_fires_tail_then_head", Discrete(Loop, 6, 2, 10, 1), []string{"c", "a"}},
		{"sweep_fires_everything_once", Discrete(Loop, 6, 2, 10, 2), []string{"c", "b", "a"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got []string
			FireAtMostOnce(c.tr, keys, keyFrame, func(k testKey) { got = append(got, k.name) })
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestFireWithMultiplicity(t *testing.T) {
	keys := []testKey{{1, "a"}, {5, "b"}, {8, "c"}}
	tr := Discrete(Loop, 6, 2, 10, 2)

	got := map[string]Count{}
	var order []string
	FireWithMultiplicity(tr, keys, keyFrame, func(k testKey, n Count) {
		got[k.name] = n
		order = append(order, k.name)
	})

	want := map[string]Count{"a": 2, "b": 1, "c": 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !reflect.DeepEqual(order, []string{"c", "b", "a"}) {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestVisitIndices(t *testing.T) {
	tr := Discrete(Loop, 5, 6, 10, 2)
	var visited []int
	VisitIndices(tr, 10, func(i int) { visited = append(visited, i) })

	if len(visited) != 4+10+7 {
		t.Fatalf("expected 21 visits, got %d (%v)", len(visited), visited)
	}
	if visited[0] != 6 || visited[len(visited)-1] != 6 {
		t.Fatalf("walk should start after prev and stop at cur: %v", visited)
	}
}
