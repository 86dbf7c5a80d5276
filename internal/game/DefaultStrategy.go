package game

import "math"

// DefaultStrategy chases the food greedily while avoiding walls and its own body.
type DefaultStrategy struct{}

func (s *DefaultStrategy) NextDirection(snapshot Snapshot) Direction {
	current := snapshot.Direction
	if len(snapshot.Snake) == 0 {
		return current
	}

	head := snapshot.Head()
	body := make(map[Cell]struct{}, len(snapshot.Snake))
	for _, c := range snapshot.Snake {
		body[c] = struct{}{}
	}

	best := current
	bestDistance := math.MaxInt
	foundSafe := false

	for _, dir := range Directions {
		// Prevent moving backwards
		if dir.IsOpposite(current) {
			continue
		}

		next := head.Step(dir)
		if !next.InBounds(snapshot.Rows, snapshot.Cols) {
			continue
		}
		// The tail has not moved yet when the head arrives, so it blocks too.
		if _, hit := body[next]; hit {
			continue
		}

		distance := 0
		if snapshot.HasFood {
			distance = GetManhattanDistance(next, snapshot.Food)
		}

		if distance < bestDistance || (distance == bestDistance && dir == current) {
			best = dir
			bestDistance = distance
			foundSafe = true
		}
	}

	if !foundSafe {
		return current // Trapped
	}
	return best
}
