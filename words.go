package cfg

// WordIterator yields the terminal strings derivable from a grammar's start
// symbol, shortest first, without duplicates. It is the Go analogue of the
// originating library's generator-based get_words: a private goroutine
// produces words onto a channel; Next pulls one at a time, and Stop (or
// draining Next to exhaustion) releases the goroutine.
type WordIterator struct {
	words chan []Terminal
	stop  chan struct{}
}

// Next returns the next word and true, or (nil, false) once enumeration is
// exhausted.
func (it *WordIterator) Next() ([]Terminal, bool) {
	w, ok := <-it.words
	return w, ok
}

// Stop releases the producer goroutine if the caller does not intend to
// drain Next to exhaustion.
func (it *WordIterator) Stop() {
	select {
	case <-it.stop:
	default:
		close(it.stop)
	}
}

// GetWords enumerates every terminal string derivable from the start symbol
// with length <= maxLength (any negative value means unbounded, per spec
// §7's "negative max_length is the sentinel unbounded"). The empty word is
// yielded first iff the start symbol is nullable. When unbounded, the
// enumerator stops once more than ⌈ℓ/2⌉ consecutive lengths produced no new
// word anywhere in the grammar (ℓ the next length to be tried) — a best-effort bound (spec §9 Open
// Question), not a completeness proof.
func (g *Grammar) GetWords(maxLength int) *WordIterator {
	it := &WordIterator{words: make(chan []Terminal), stop: make(chan struct{})}
	go func() {
		defer close(it.words)
		g.enumerateWords(maxLength, func(w []Terminal) bool {
			select {
			case it.words <- w:
				return true
			case <-it.stop:
				return false
			}
		})
	}()
	return it
}

func (g *Grammar) enumerateWords(maxLength int, emit func([]Terminal) bool) {
	if maxLength < 0 {
		maxLength = -1
	}
	if g.GenerateEpsilon() {
		if !emit(nil) {
			return
		}
	}
	if maxLength == 0 {
		return
	}

	cnf := g.ToCNF()

	// words[v][l] holds the distinct words of exact length l derivable from
	// variable v, in discovery order.
	words := make(map[Variable]map[int][][]Terminal)
	seen := make(map[Variable]map[int]map[string]bool)
	get := func(v Variable, l int) [][]Terminal { return words[v][l] }
	add := func(v Variable, l int, w []Terminal) bool {
		if words[v] == nil {
			words[v] = make(map[int][][]Terminal)
			seen[v] = make(map[int]map[string]bool)
		}
		if seen[v][l] == nil {
			seen[v][l] = make(map[string]bool)
		}
		k := wordKey(w)
		if seen[v][l][k] {
			return false
		}
		seen[v][l][k] = true
		words[v][l] = append(words[v][l], w)
		return true
	}

	start := cnf.Start
	for _, p := range cnf.Productions {
		if len(p.Body) != 1 {
			continue
		}
		t, ok := p.Body[0].(Terminal)
		if !ok {
			continue
		}
		if add(p.Head, 1, []Terminal{t}) && p.Head == start {
			if !emit([]Terminal{t}) {
				return
			}
		}
	}

	currentLength := 2
	totalNoModification := 0
	for currentLength <= maxLength || maxLength == -1 {
		modified := false
		for _, p := range cnf.Productions {
			if len(p.Body) != 2 {
				continue
			}
			left, ok1 := p.Body[0].(Variable)
			right, ok2 := p.Body[1].(Variable)
			if !ok1 || !ok2 {
				continue
			}
			for i := 1; i < currentLength; i++ {
				j := currentLength - i
				for _, lw := range get(left, i) {
					for _, rw := range get(right, j) {
						nw := append(append([]Terminal{}, lw...), rw...)
						if add(p.Head, currentLength, nw) {
							modified = true
							if p.Head == start {
								if !emit(nw) {
									return
								}
							}
						}
					}
				}
			}
		}
		if modified {
			totalNoModification = 0
		} else {
			totalNoModification++
		}
		currentLength++
		if maxLength == -1 && totalNoModification > (currentLength+1)/2 {
			return
		}
	}
}

func wordKey(w []Terminal) string {
	s := ""
	for _, t := range w {
		s += "\x01" + string(t)
	}
	return s
}

// IsFinite reports whether the grammar's language is finite: it converts to
// CNF and checks that the digraph of binary-production edges (head ->
// each body element) is acyclic. Unary productions terminate recursion and
// contribute no edge.
func (g *Grammar) IsFinite() bool {
	cnf := g.ToCNF()
	edges := make(map[Variable][]Variable)
	for _, p := range cnf.Productions {
		if len(p.Body) != 2 {
			continue
		}
		for _, s := range p.Body {
			if v, ok := s.(Variable); ok {
				edges[p.Head] = append(edges[p.Head], v)
			}
		}
	}
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[Variable]int)
	var hasCycle func(v Variable) bool
	hasCycle = func(v Variable) bool {
		color[v] = gray
		for _, next := range edges[v] {
			switch color[next] {
			case gray:
				return true
			case white:
				if hasCycle(next) {
					return true
				}
			}
		}
		color[v] = black
		return false
	}
	for _, v := range cnf.Variables {
		if color[v] == white {
			if hasCycle(v) {
				return false
			}
		}
	}
	return true
}
