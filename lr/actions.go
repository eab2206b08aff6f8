package lr

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ActionRegistry maps action identifiers to compiled actions. Grammars refer to
// actions by identifier only, which makes them serializable: deserialization
// resolves identifiers through a registry.
//
// A registry knows about the derived actions created by grammar transformations
// (identifiers starting with '~') and resolves them without registration.
type ActionRegistry struct {
	actions map[string]Action
}

// NewActionRegistry creates an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{actions: make(map[string]Action)}
}

// Register adds an action under a name. Names must not start with '~'.
func (r *ActionRegistry) Register(name string, action Action) *ActionRegistry {
	if name == "" || strings.HasPrefix(name, "~") {
		panic(fmt.Sprintf("illegal action name %q", name))
	}
	r.actions[name] = action
	return r
}

// Lookup finds an action by name. The empty name resolves to no action.
func (r *ActionRegistry) Lookup(name string) (Action, bool) {
	switch {
	case name == "":
		return nil, true
	case name == identityActionName:
		return identityAction, true
	case name == emptyListActionName:
		return emptyListAction, true
	case strings.HasPrefix(name, "~head(") && strings.HasSuffix(name, ")"):
		inner, ok := r.Lookup(name[len("~head(") : len(name)-1])
		if !ok {
			return nil, false
		}
		return headAction(inner), true
	case strings.HasPrefix(name, "~tail(") && strings.HasSuffix(name, ")"):
		inner, ok := r.Lookup(name[len("~tail(") : len(name)-1])
		if !ok {
			return nil, false
		}
		return tailAction(inner), true
	}
	if r == nil {
		return nil, false
	}
	a, ok := r.actions[name]
	return a, ok
}

// Names returns the names of all registered actions in ascending order.
func (r *ActionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	names := maps.Keys(r.actions)
	slices.Sort(names)
	return names
}

// --- Derived actions -------------------------------------------------------

const (
	identityActionName  = "~identity"
	emptyListActionName = "~empty"
)

func headActionName(name string) string { return "~head(" + name + ")" }
func tailActionName(name string) string { return "~tail(" + name + ")" }

// continuation is a deferred application of a left-recursive rule's action,
// captured while parsing the right-recursive replacement rules.
type continuation struct {
	args   []interface{}
	action Action
}

func call(a Action, args []interface{}) interface{} {
	if a == nil {
		return nil
	}
	return a(args)
}

func identityAction(args []interface{}) interface{} {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

func emptyListAction([]interface{}) interface{} {
	return []continuation{}
}

func splitContinuations(args []interface{}) ([]interface{}, []continuation) {
	if len(args) == 0 {
		return args, nil
	}
	last := len(args) - 1
	conts, _ := args[last].([]continuation)
	return args[:last], conts
}

// tailAction wraps the action of X ➞ X α for use with X' ➞ α X'.
// It appends a continuation for the current α to the list built by the
// trailing X'.
func tailAction(a Action) Action {
	return func(args []interface{}) interface{} {
		rest, conts := splitContinuations(args)
		l := make([]continuation, len(conts), len(conts)+1)
		copy(l, conts)
		return append(l, continuation{args: rest, action: a})
	}
}

// headAction wraps the action of X ➞ β for use with X ➞ β X'.
// It computes the value for β and folds the continuations of X' over it,
// in input order.
func headAction(a Action) Action {
	return func(args []interface{}) interface{} {
		rest, conts := splitContinuations(args)
		result := call(a, rest)
		for i := len(conts) - 1; i >= 0; i-- {
			c := conts[i]
			cargs := make([]interface{}, 0, len(c.args)+1)
			cargs = append(cargs, result)
			cargs = append(cargs, c.args...)
			result = call(c.action, cargs)
		}
		return result
	}
}
