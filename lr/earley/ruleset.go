package earley

// symset is a set of non-terminal names, used to predict every non-terminal
// at most once per input position.
type symset map[string]struct{}

var exists = struct{}{}

func (set symset) add(n string) symset {
	if set == nil {
		set = symset{}
	}
	set[n] = exists
	return set
}

func (set symset) contains(n string) bool {
	if set == nil {
		return false
	}
	_, ok := set[n]
	return ok
}
