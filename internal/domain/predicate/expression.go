package predicate

import (
	"fmt"

	"github.com/sliceboard/sliceboard/internal/domain"
	"github.com/sliceboard/sliceboard/internal/domain/dataset"
)

// node is one term of an expression level: either a comparison leaf or a
// nested group. The join connects it to the term on its left.
type node struct {
	join     Join
	leaf     *Predicate
	children []node
}

// Expression is a compiled predicate expression. Group markers in the source
// predicate list are resolved into a tree once, at authoring time, so
// malformed nesting can never reach evaluation.
type Expression struct {
	children []node
	source   []Predicate
}

// Compile validates an ordered predicate list and builds the expression tree.
//
// A GroupStart marker opens a group whose join to the preceding term is the
// opening predicate's join; a GroupEnd marker closes the innermost open group
// after its predicate. Unmatched markers fail with ErrUnbalancedGroup. Every
// predicate after the first term of its level must carry an AND or OR join.
func Compile(preds []Predicate) (Expression, error) {
	root := &frame{}
	stack := []*frame{root}

	for i, p := range preds {
		top := stack[len(stack)-1]

		join := p.join
		if p.group == GroupStart {
			// The opener's join belongs to the group itself; inside the
			// group the opener is the leading term.
			child := &frame{join: join}
			if err := top.checkJoin(i, join); err != nil {
				return Expression{}, err
			}
			stack = append(stack, child)
			top = child
			join = JoinNone
		}

		if err := top.checkJoin(i, join); err != nil {
			return Expression{}, err
		}
		leaf := p
		top.nodes = append(top.nodes, node{join: join, leaf: &leaf})

		if p.group == GroupEnd {
			if len(stack) == 1 {
				return Expression{}, fmt.Errorf("%w: unmatched group end at predicate %d", domain.ErrUnbalancedGroup, i)
			}
			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.nodes = append(parent.nodes, node{join: closed.join, children: closed.nodes})
		}
	}

	if len(stack) != 1 {
		return Expression{}, fmt.Errorf("%w: %d unclosed group(s)", domain.ErrUnbalancedGroup, len(stack)-1)
	}

	src := make([]Predicate, len(preds))
	copy(src, preds)
	return Expression{children: root.nodes, source: src}, nil
}

// frame is an open group during compilation.
type frame struct {
	join  Join
	nodes []node
}

// checkJoin enforces the join contract for a term entering this frame: the
// leading term carries no meaningful join (it is ignored), every later term
// needs an explicit AND or OR.
func (f *frame) checkJoin(i int, join Join) error {
	if len(f.nodes) == 0 {
		return nil
	}
	if join == JoinNone {
		return fmt.Errorf("predicate %d: missing join between adjacent predicates", i)
	}
	return nil
}

// IsEmpty reports whether the expression has no terms. An empty expression is
// the identity filter and matches every row.
func (e Expression) IsEmpty() bool { return len(e.children) == 0 }

// Predicates returns the source predicate list the expression was compiled from.
func (e Expression) Predicates() []Predicate { return e.source }

// Evaluate folds the expression over one row, left to right. Groups bind
// tighter than adjacent ungrouped predicates; there is no precedence between
// AND and OR beyond that.
func (e Expression) Evaluate(row dataset.Row) bool {
	if e.IsEmpty() {
		return true
	}
	return evalLevel(e.children, row)
}

func evalLevel(nodes []node, row dataset.Row) bool {
	acc := evalNode(nodes[0], row)
	for _, n := range nodes[1:] {
		v := evalNode(n, row)
		if n.join == JoinOr {
			acc = acc || v
		} else {
			acc = acc && v
		}
	}
	return acc
}

func evalNode(n node, row dataset.Row) bool {
	if n.leaf != nil {
		return n.leaf.Matches(row)
	}
	return evalLevel(n.children, row)
}
