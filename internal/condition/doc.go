// Package condition models the hiking scenario a packing session is judged
// against. A Condition is drawn at random by a Generator, which rejects
// internally contradictory combinations, or built from an explicit player
// Selection without any contradiction checking.
package condition
