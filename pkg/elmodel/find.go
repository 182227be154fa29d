package elmodel

// FindExpression returns the innermost invocation enclosing offset.
//
// Among all invocations whose [start, end] range contains offset, the one
// with the greatest start wins; on a tie the later one in model order wins.
// The winner's left chain is then followed for as long as the predecessor
// still reaches offset, so a cursor inside the base of a chained call lands
// on that base.
//
// The best candidate is shared across instances, so instances are expected
// not to overlap. Reporting false is the normal "nothing here" answer.
func FindExpression(model *Model, offset int) (*Invocation, bool) {
	if model == nil {
		return nil, false
	}

	var result *Invocation
	best := -1
	depth := 0

	for _, inst := range model.instances {
		if inst == nil || inst.expression == nil {
			continue
		}
		expr := inst.expression
		if expr.firstToken.Start > offset {
			continue
		}
		for _, inv := range expr.invocations {
			if inv == nil || !inv.Contains(offset) {
				continue
			}
			if inv.start >= best {
				result = inv
				best = inv.start
				depth = len(expr.invocations)
			}
		}
	}

	if result == nil {
		return nil, false
	}

	// never walk further than the owning expression has steps
	for left := result.left; left != nil && left.end >= offset && depth > 0; left = left.left {
		result = left
		depth--
	}

	return result, true
}
