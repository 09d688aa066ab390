package domgen

// stepKind is one DOM navigation step from a template clone's root to a
// bound descendant (spec's WalkPath).
type stepKind int

const (
	stepFirstChild stepKind = iota
	stepNextSibling
)

// assignVars performs the walk-path planning pass (spec §4.2 step 2):
// a depth-first walk that gives every node flagged needsAccess a
// variable, computing its accessor path from the nearest ancestor that
// already has one. Shared prefixes are merged for free by construction:
// once a sibling gets its own variable, later siblings chain a single
// NextSibling off of it instead of recomputing from the original
// ancestor.
func assignVars(ctx *Context, root *tplNode) (declarations []string) {
	root.varName = "_el$"
	visit(ctx, root, "_el$", nil, &declarations)
	return declarations
}

func visit(ctx *Context, node *tplNode, ancestorVar string, relPath []stepKind, decls *[]string) {
	// curVar/curPath track how to reach the most recently visited
	// sibling: either a named variable with an empty path, or the
	// original ancestor variable with the path accumulated so far.
	curVar := ancestorVar
	curPath := relPath

	for i, child := range node.children {
		var childPath []stepKind
		if i == 0 {
			childPath = appendStep(curPath, stepFirstChild)
		} else {
			childPath = appendStep(curPath, stepNextSibling)
		}

		if child.needsAccess {
			child.varName = ctx.IDs.Next("_el$")
			*decls = append(*decls, "const "+child.varName+" = "+renderAccessor(curVar, childPath)+";")
			visit(ctx, child, child.varName, nil, decls)
			curVar, curPath = child.varName, nil
		} else {
			visit(ctx, child, curVar, childPath, decls)
			curPath = childPath
		}
	}
}

func appendStep(path []stepKind, s stepKind) []stepKind {
	out := make([]stepKind, len(path)+1)
	copy(out, path)
	out[len(path)] = s
	return out
}

func renderAccessor(base string, path []stepKind) string {
	out := base
	for _, s := range path {
		switch s {
		case stepFirstChild:
			out += ".firstChild"
		case stepNextSibling:
			out += ".nextSibling"
		}
	}
	return out
}
