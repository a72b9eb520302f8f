package scoring

import "math/rand/v2"

// feedbackPool is the fixed set of canned feedback lines shown per answer.
var feedbackPool = []string{
	"Try answering with more clarity and avoid long pauses. Great job overall!",
	"Good structure. Back up your points with a concrete example next time.",
	"Solid answer. Slow down slightly so every point lands.",
	"Nice delivery. Tie your answer back to the role's requirements.",
	"You covered the basics well. Add a result or metric to stand out.",
	"Confident tone. Trim the filler words and keep the same energy.",
}

// RandomFeedback returns one line from the fixed feedback pool.
func RandomFeedback() string {
	return feedbackPool[rand.IntN(len(feedbackPool))]
}
