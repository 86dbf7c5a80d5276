package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
)

type GameStatus int

const (
	Running GameStatus = iota
	Paused
	GameOver
)

func (s GameStatus) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("GameStatus(%d)", int(s))
	}
}

// HighScoreKeeper is the persistence collaborator the game reports to.
// Implementations never fail from the game's point of view. Submit records
// score only when it beats the stored value, comparing and writing as one step,
// and returns the value it was compared against.
type HighScoreKeeper interface {
	Load() int
	Submit(score int) (previous int, recorded bool)
}

// Snapshot is a read-only copy of the game state for renderers and strategies.
type Snapshot struct {
	Rows, Cols int
	Snake      []Cell
	Food       Cell
	HasFood    bool
	Direction  Direction
	Score      int
	HighScore  int
	Status     GameStatus
	Delay      time.Duration
}

func (s Snapshot) Head() Cell {
	return s.Snake[0]
}

// GameManager owns one game: the snake, food, score and timing. It is not safe
// for concurrent use; the UI loop is its only caller.
type GameManager struct {
	cfg    Config
	rng    *rand.Rand
	scores HighScoreKeeper

	snake     []Cell
	direction Direction
	pending   Direction
	food      Cell
	hasFood   bool
	score     int
	highScore int
	status    GameStatus
	delay     time.Duration
	sinceMove time.Duration
}

// NewGameManager validates cfg and starts a fresh game. scores may be nil, in
// which case the high score stays at zero and nothing is persisted.
func NewGameManager(cfg Config, scores HighScoreKeeper, rng *rand.Rand) (*GameManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	gm := &GameManager{
		cfg:    cfg,
		rng:    rng,
		scores: scores,
	}
	gm.Restart()
	return gm, nil
}

// Restart puts every piece of game state back to its starting value and
// re-reads the persisted high score.
func (gm *GameManager) Restart() {
	headRow, headCol := gm.cfg.Rows/2, gm.cfg.Cols/2
	gm.snake = make([]Cell, 0, gm.cfg.InitialLength)
	for i := 0; i < gm.cfg.InitialLength; i++ {
		gm.snake = append(gm.snake, Cell{Row: headRow, Col: headCol - i})
	}

	gm.direction = Right
	gm.pending = Right
	gm.score = 0
	gm.status = Running
	gm.delay = gm.cfg.InitialDelay
	gm.sinceMove = 0
	gm.food, gm.hasFood = PlaceFood(gm.rng, gm.cfg.Rows, gm.cfg.Cols, gm.snake)
	gm.highScore = gm.loadHighScore()
}

// SetDirection queues a direction change for the next move. Requests are
// ignored unless the game is running, and a request to reverse the direction
// applied by the last move is dropped.
func (gm *GameManager) SetDirection(requested Direction) {
	if gm.status != Running || !requested.isUnit() {
		return
	}
	if requested.IsOpposite(gm.direction) {
		return
	}
	gm.pending = requested
}

// TogglePause flips between running and paused. It does nothing after game over.
func (gm *GameManager) TogglePause() {
	switch gm.status {
	case Running:
		gm.status = Paused
	case Paused:
		gm.status = Running
	}
}

// Tick advances the game clock by elapsed and moves the snake one cell when the
// move delay has been reached. It reports whether the snake moved.
func (gm *GameManager) Tick(elapsed time.Duration) bool {
	if gm.status != Running || elapsed < 0 {
		return false
	}
	gm.sinceMove += elapsed
	if gm.sinceMove < gm.delay {
		return false
	}
	gm.sinceMove = 0
	return gm.step()
}

func (gm *GameManager) step() bool {
	gm.direction = gm.pending
	newHead := gm.snake[0].Step(gm.direction)

	if !newHead.InBounds(gm.cfg.Rows, gm.cfg.Cols) || gm.occupies(newHead) {
		log.Debug("Snake collided", "head", newHead, "score", gm.score)
		gm.endGame()
		return false
	}

	gm.snake = append(gm.snake, Cell{})
	copy(gm.snake[1:], gm.snake)
	gm.snake[0] = newHead

	if gm.hasFood && newHead == gm.food {
		gm.score++
		gm.food, gm.hasFood = PlaceFood(gm.rng, gm.cfg.Rows, gm.cfg.Cols, gm.snake)
		if gm.score%gm.cfg.SpeedupEvery == 0 {
			gm.delay = gm.cfg.nextDelay(gm.delay)
			log.Debug("Speeding up", "score", gm.score, "delay", gm.delay)
		}
		if !gm.hasFood {
			log.Info("Board cleared", "score", gm.score)
			gm.endGame()
		}
		return true
	}

	gm.snake = gm.snake[:len(gm.snake)-1]
	return true
}

// occupies checks the body as it stands before the move, tail included.
func (gm *GameManager) occupies(c Cell) bool {
	for _, part := range gm.snake {
		if part == c {
			return true
		}
	}
	return false
}

func (gm *GameManager) endGame() {
	gm.status = GameOver

	if gm.scores == nil {
		gm.highScore = max(gm.highScore, gm.score)
		return
	}
	previous, recorded := gm.scores.Submit(gm.score)
	if recorded {
		log.Info("New high score", "score", gm.score, "previous", previous)
	}
	gm.highScore = max(previous, gm.score)
}

func (gm *GameManager) loadHighScore() int {
	if gm.scores == nil {
		return 0
	}
	return gm.scores.Load()
}

func (gm *GameManager) Status() GameStatus {
	return gm.status
}

func (gm *GameManager) Score() int {
	return gm.score
}

func (gm *GameManager) HighScore() int {
	return gm.highScore
}

func (gm *GameManager) Config() Config {
	return gm.cfg
}

func (gm *GameManager) Snapshot() Snapshot {
	snake := make([]Cell, len(gm.snake))
	copy(snake, gm.snake)
	return Snapshot{
		Rows:      gm.cfg.Rows,
		Cols:      gm.cfg.Cols,
		Snake:     snake,
		Food:      gm.food,
		HasFood:   gm.hasFood,
		Direction: gm.direction,
		Score:     gm.score,
		HighScore: gm.highScore,
		Status:    gm.status,
		Delay:     gm.delay,
	}
}
