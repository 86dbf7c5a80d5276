package game

// Strategy picks the direction an autopiloted snake should take next.
// Answers go through GameManager.SetDirection like keyboard input.
type Strategy interface {
	NextDirection(snapshot Snapshot) Direction
}
