package rules

// Conway is the standard B3/S23 rule applied to the 3D neighbourhood.
var Conway = MustNew([]int{3}, []int{2, 3})

/*
Apply applies a rule to determine the next state of a cell.

	dead  && n ∈ birth   -> alive
	alive && n ∉ survive -> dead
	otherwise the state is kept
*/
func Apply(r Rule, neighbors int, alive bool) bool {
	if alive {
		return r.Survivable(neighbors)
	}
	return r.Birthable(neighbors)
}
