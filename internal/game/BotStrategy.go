package game

// Strategy steers the snake when the autopilot is on. It is only called from
// the game loop goroutine.
type Strategy interface {
	NextDirection(snapshot Snapshot) Direction
}
