package engine

// dominanceFactor is how many times the follower's score the leader needs
// for an outright win label
const dominanceFactor = 3

// Label returns the double-chance label for two composite scores:
// "(X)" for level scores, "(1W)"/"(2W)" when one side dominates, and
// "(1W X)"/"(2W X)" (win or draw) otherwise.
func Label(homeScore, awayScore float64) string {
	var leader, follower float64
	var side string
	switch {
	case homeScore > awayScore:
		leader, follower, side = homeScore, awayScore, "1"
	case awayScore > homeScore:
		leader, follower, side = awayScore, homeScore, "2"
	default:
		return "(X)"
	}

	if follower == 0 || leader > follower*dominanceFactor {
		return "(" + side + "W)"
	}
	return "(" + side + "W X)"
}
