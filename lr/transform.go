package lr

// RemoveLeftRecursion returns a grammar without immediate left recursion.
// For every non-terminal X with rules X ➞ X α a fresh non-terminal X' is
// introduced:
//
//     X  ➞ X α | β    becomes    X  ➞ β X'
//                                X' ➞ α X' | ε
//
// Semantic actions are rewritten so that the values computed for the new
// grammar equal the values of the left-associative original: X' collects
// continuations, X ➞ β X' folds them in input order.
// Rules X ➞ X are dropped. Rounds repeat until no left recursion is left.
// If g is not left-recursive, g itself is returned.
func (g *Grammar) RemoveLeftRecursion() *Grammar {
	return g.removeLeftRecursion(0)
}

func (g *Grammar) removeLeftRecursion(depth int) *Grammar {
	recursive := make(map[string]bool)
	for _, p := range g.productions {
		if len(p.rhs) > 0 && !p.rhs[0].IsTerminal() && p.rhs[0].name == p.LHS {
			recursive[p.LHS] = true
		}
	}
	if len(recursive) == 0 {
		return g
	}
	name := g.Name
	if depth == 0 {
		name += " non left-recursive"
	}
	ng := g.derive(name)
	primed := make(map[string]string)
	for _, n := range g.NonTerminals() {
		if recursive[n] {
			primed[n] = ng.freshName(n)
			ng.declareNonTerminal(primed[n])
		}
	}
	tracer().Debugf("removing left recursion from %v (round %d)", primed, depth+1)
	for _, p := range g.productions {
		xp, isrec := primed[p.LHS]
		if !isrec {
			ng.addRule(p.LHS, p.rhs, p.actionName, p.action)
			continue
		}
		if len(p.rhs) == 1 && p.rhs[0] == NonTerminal(p.LHS) {
			tracer().Infof("dropping cyclic rule %s", p)
			continue
		}
		if len(p.rhs) > 0 && p.rhs[0] == NonTerminal(p.LHS) {
			rhs := append(append([]Symbol{}, p.rhs[1:]...), NonTerminal(xp))
			ng.addRule(xp, rhs, tailActionName(p.actionName), tailAction(p.action))
		} else {
			rhs := append(append([]Symbol{}, p.rhs...), NonTerminal(xp))
			ng.addRule(p.LHS, rhs, headActionName(p.actionName), headAction(p.action))
		}
	}
	for _, n := range g.NonTerminals() {
		if xp, isrec := primed[n]; isrec {
			ng.addRule(xp, nil, emptyListActionName, emptyListAction)
		}
	}
	return ng.removeLeftRecursion(depth + 1)
}

// Augment returns a new grammar with a fresh initial symbol S' and an
// additional rule S' ➞ S, where S is the initial symbol of g.
func (g *Grammar) Augment() *Grammar {
	ng := g.derive(g.Name + " augmented")
	start := ng.freshName(g.initial)
	ng.declareNonTerminal(start)
	ng.initial = start
	ng.addRule(start, []Symbol{NonTerminal(g.initial)}, identityActionName, identityAction)
	for _, p := range g.productions {
		ng.addRule(p.LHS, p.rhs, p.actionName, p.action)
	}
	return ng
}

// IsAugmented is true if the initial symbol has exactly one rule, with
// a RHS of length ≤ 1, and does not occur on any RHS.
func (g *Grammar) IsAugmented() bool {
	prods := g.Productions(g.initial)
	if len(prods) != 1 || len(prods[0].rhs) > 1 {
		return false
	}
	for _, p := range g.productions {
		for _, s := range p.rhs {
			if !s.IsTerminal() && s.name == g.initial {
				return false
			}
		}
	}
	return true
}
