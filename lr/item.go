package lr

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/cfgkit"
	"github.com/npillmayer/cfgkit/lr/iteratable"
)

// Item is an LR/Earley item: a production with a dot position, the input
// position the item originated from, and a lookahead token. Items without
// lookahead carry cfgkit.Epsilon as a placeholder.
type Item struct {
	rule      *Production
	Origin    int
	Dot       int
	Lookahead cfgkit.TokType
}

// StartItem returns the item for p with the dot at the front.
func StartItem(p *Production, origin int, lookahead cfgkit.TokType) Item {
	return Item{rule: p, Origin: origin, Lookahead: lookahead}
}

// Rule returns the production of an item.
func (i Item) Rule() *Production {
	return i.rule
}

// LHS returns the name of the item's left hand side.
func (i Item) LHS() string {
	return i.rule.LHS
}

// IsComplete is true if the dot is behind the last RHS symbol.
func (i Item) IsComplete() bool {
	return i.Dot >= len(i.rule.rhs)
}

// PeekSymbol returns the symbol after the dot, if any.
func (i Item) PeekSymbol() (Symbol, bool) {
	if i.IsComplete() {
		return Symbol{}, false
	}
	return i.rule.rhs[i.Dot], true
}

// Rest returns the RHS symbols behind the symbol after the dot.
func (i Item) Rest() []Symbol {
	if i.Dot+1 >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.Dot+1:]
}

// Advance returns a copy of the item with the dot moved one symbol to the right.
func (i Item) Advance() Item {
	if !i.IsComplete() {
		i.Dot++
	}
	return i
}

// Core returns the item with the lookahead set to the placeholder.
func (i Item) Core() Item {
	i.Lookahead = cfgkit.Epsilon
	return i
}

func (i Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s ➞", i.rule.LHS)
	for k, s := range i.rule.rhs {
		if k == i.Dot {
			b.WriteString(" •")
		}
		b.WriteByte(' ')
		b.WriteString(s.String())
	}
	if i.IsComplete() {
		b.WriteString(" •")
	}
	fmt.Fprintf(&b, ", %d", i.Origin)
	if i.Lookahead != cfgkit.Epsilon {
		fmt.Fprintf(&b, ", %s", i.Lookahead)
	}
	b.WriteByte(']')
	return b.String()
}

// CompareItems orders items by LHS, origin, dot, RHS and lookahead.
func CompareItems(a, b interface{}) int {
	x, y := a.(Item), b.(Item)
	if c := strings.Compare(x.rule.LHS, y.rule.LHS); c != 0 {
		return c
	}
	if c := x.Origin - y.Origin; c != 0 {
		return c
	}
	if c := x.Dot - y.Dot; c != 0 {
		return c
	}
	if c := compareRHS(x.rule.rhs, y.rule.rhs); c != 0 {
		return c
	}
	return compareTokTypes(x.Lookahead, y.Lookahead)
}

// itemKey is the hashed identity of an item. A production is identified by its
// serial number, which is unique per grammar.
type itemKey struct {
	Rule      int
	Origin    int
	Dot       int
	Lookahead int
}

func (i Item) key() itemKey {
	return itemKey{
		Rule:      i.rule.serial,
		Origin:    i.Origin,
		Dot:       i.Dot,
		Lookahead: int(i.Lookahead),
	}
}

func hashItem(x interface{}) string {
	return fmt.Sprintf("%x", structhash.Md5(x.(Item).key(), 1))
}

// NewItemSet creates an empty set of items with hash-assisted lookup.
func NewItemSet() *iteratable.Set {
	return iteratable.NewSet(CompareItems, hashItem)
}

// itemSetSignature computes a hash over all items of a set, suitable for
// pre-selecting candidates for set equality.
func itemSetSignature(items *iteratable.Set) string {
	keys := make([]itemKey, 0, items.Size())
	items.Each(func(x interface{}) bool {
		keys = append(keys, x.(Item).key())
		return true
	})
	sig, err := structhash.Hash(keys, 1)
	if err != nil {
		panic(fmt.Sprintf("cannot hash item set: %v", err))
	}
	return sig
}

// --- Item set operations ---------------------------------------------------

// Closure computes the closure of a set of items. Predicted items start with
// the dot at the front. If useLookahead is set, predicted items get their
// lookahead from FIRST of the remaining RHS followed by the predicting item's
// lookahead; otherwise they carry the placeholder lookahead.
// The argument set is not modified.
func (ga *GrammarAnalysis) Closure(items *iteratable.Set, useLookahead bool) *iteratable.Set {
	closure := NewItemSet()
	var visit func(Item)
	visit = func(item Item) {
		if closure.Add(item) == 0 {
			return
		}
		A, ok := item.PeekSymbol()
		if !ok || A.IsTerminal() {
			return
		}
		var lookaheads []cfgkit.TokType
		if useLookahead {
			seq := append(append([]Symbol{}, item.Rest()...), Terminal(item.Lookahead))
			lookaheads = ga.FirstOfSequence(seq)
		} else {
			lookaheads = []cfgkit.TokType{cfgkit.Epsilon}
		}
		for _, p := range ga.g.Productions(A.name) {
			for _, la := range lookaheads {
				visit(StartItem(p, 0, la))
			}
		}
	}
	items.Each(func(x interface{}) bool {
		visit(x.(Item))
		return true
	})
	return closure
}

// Move returns the items of a set with A behind the dot, with the dot advanced over A.
func Move(items *iteratable.Set, A Symbol) *iteratable.Set {
	moved := NewItemSet()
	items.Each(func(x interface{}) bool {
		item := x.(Item)
		if s, ok := item.PeekSymbol(); ok && s == A {
			moved.Add(item.Advance())
		}
		return true
	})
	return moved
}

// Goto computes the closure of moving a set of items over A.
func (ga *GrammarAnalysis) Goto(items *iteratable.Set, A Symbol, useLookahead bool) *iteratable.Set {
	return ga.Closure(Move(items, A), useLookahead)
}

// CoreItems returns the items of a set with lookaheads replaced by the placeholder.
func CoreItems(items *iteratable.Set) *iteratable.Set {
	cores := NewItemSet()
	items.Each(func(x interface{}) bool {
		cores.Add(x.(Item).Core())
		return true
	})
	return cores
}
