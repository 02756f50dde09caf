package diagram

// Node states of the iterative depth-first walk.
const (
	unvisited uint8 = iota
	onPath
	done
)

// dfsFrame is one explicit stack frame of the walk: a class id and the
// index of the next outgoing edge to follow.
type dfsFrame struct {
	id   string
	next int
}

// inheritanceAdjacency builds the child -> parent adjacency restricted to
// inheritance edges.
func inheritanceAdjacency(g *Graph) map[string][]string {
	adj := make(map[string][]string)
	for _, r := range g.Relationships {
		if r.Kind != Inheritance {
			continue
		}
		adj[r.SourceID] = append(adj[r.SourceID], r.TargetID)
	}
	return adj
}

// HasInheritanceCycle reports if the inheritance edges of the graph form a
// cycle. The walk keeps its own stack instead of recursing, so diagrams
// with tens of thousands of classes in one hierarchy cannot overflow the
// goroutine stack. The graph is never mutated.
func HasInheritanceCycle(g *Graph) bool {
	adj := inheritanceAdjacency(g)
	state := make(map[string]uint8, len(adj))
	for id := range adj {
		if state[id] == unvisited && hasCycleFrom(id, adj, state) {
			return true
		}
	}
	return false
}

// hasCycleFrom runs one depth-first walk from start. An edge back to a
// class still on the current path is a cycle.
func hasCycleFrom(start string, adj map[string][]string, state map[string]uint8) bool {
	stack := []dfsFrame{{id: start}}
	state[start] = onPath
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		parents := adj[top.id]
		if top.next < len(parents) {
			next := parents[top.next]
			top.next++
			switch state[next] {
			case onPath:
				return true
			case unvisited:
				state[next] = onPath
				stack = append(stack, dfsFrame{id: next})
			}
			continue
		}
		state[top.id] = done
		stack = stack[:len(stack)-1]
	}
	return false
}

// InheritanceCycle returns one inheritance cycle as the class ids along
// its walk, with the starting id repeated at the end so the path reads
// closed. It returns nil when the hierarchy is acyclic. Which cycle is
// reported is unspecified when several exist.
func InheritanceCycle(g *Graph) []string {
	adj := inheritanceAdjacency(g)
	state := make(map[string]uint8, len(adj))
	for _, r := range g.Relationships {
		if r.Kind != Inheritance || state[r.SourceID] != unvisited {
			continue
		}
		if cycle := cycleFrom(r.SourceID, adj, state); cycle != nil {
			return cycle
		}
	}
	return nil
}

// cycleFrom walks like hasCycleFrom but materializes the offending path:
// when an edge leads back onto the current path, the frames from that
// class to the top of the stack are the cycle.
func cycleFrom(start string, adj map[string][]string, state map[string]uint8) []string {
	stack := []dfsFrame{{id: start}}
	state[start] = onPath
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		parents := adj[top.id]
		if top.next < len(parents) {
			next := parents[top.next]
			top.next++
			switch state[next] {
			case onPath:
				i := len(stack) - 1
				for stack[i].id != next {
					i--
				}
				cycle := make([]string, 0, len(stack)-i+1)
				for _, f := range stack[i:] {
					cycle = append(cycle, f.id)
				}
				return append(cycle, next)
			case unvisited:
				state[next] = onPath
				stack = append(stack, dfsFrame{id: next})
			}
			continue
		}
		state[top.id] = done
		stack = stack[:len(stack)-1]
	}
	return nil
}

// WouldCreateCycle reports if adding an inheritance edge from sourceID to
// targetID would close a cycle: either the edge is a self-loop, or the
// target already reaches the source through existing inheritance edges.
// The candidate edge is not added; the graph is never mutated.
func WouldCreateCycle(g *Graph, sourceID, targetID string) bool {
	if sourceID == targetID {
		return true
	}
	adj := inheritanceAdjacency(g)
	stack := []string{targetID}
	seen := map[string]struct{}{targetID: {}}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, parent := range adj[id] {
			if parent == sourceID {
				return true
			}
			if _, ok := seen[parent]; !ok {
				seen[parent] = struct{}{}
				stack = append(stack, parent)
			}
		}
	}
	return false
}
