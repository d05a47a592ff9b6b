package ontology

// Graph exposes the direct parent/child edges of the ontology DAG.
type Graph interface {
	Parents(u EdamUri) []EdamUri
	Children(u EdamUri) []EdamUri
}

// Every walk below keeps a visited set, so a malformed ontology containing a
// cycle still terminates.

// Ancestors returns all transitive parents of u in breadth-first order,
// without u itself.
func Ancestors(g Graph, u EdamUri) []EdamUri {
	return walk(g.Parents, u)
}

// Descendants returns all transitive children of u in breadth-first order,
// without u itself.
func Descendants(g Graph, u EdamUri) []EdamUri {
	return walk(g.Children, u)
}

// IsAncestor reports whether ancestor is reachable from u through parent
// edges. A concept is not its own ancestor.
func IsAncestor(g Graph, ancestor, u EdamUri) bool {
	if ancestor == u {
		return false
	}
	visited := map[EdamUri]struct{}{u: {}}
	stack := append([]EdamUri(nil), g.Parents(u)...)
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if next == ancestor {
			return true
		}
		if _, seen := visited[next]; seen {
			continue
		}
		visited[next] = struct{}{}
		stack = append(stack, g.Parents(next)...)
	}
	return false
}

// IsTopLevel reports whether u has no parents.
func IsTopLevel(g Graph, u EdamUri) bool {
	return len(g.Parents(u)) == 0
}

func walk(edges func(EdamUri) []EdamUri, start EdamUri) []EdamUri {
	visited := map[EdamUri]struct{}{start: {}}
	var out []EdamUri
	queue := append([]EdamUri(nil), edges(start)...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if _, seen := visited[next]; seen {
			continue
		}
		visited[next] = struct{}{}
		out = append(out, next)
		queue = append(queue, edges(next)...)
	}
	return out
}
