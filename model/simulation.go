package model

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life-board/rules"
	"github.com/sheikhrachel/go-life-board/utils"
)

// Observer receives a Frame after every committed generation. It is called
// from the run loop goroutine without the simulation lock held.
type Observer func(Frame)

// Sleeper suspends the run loop between generations
type Sleeper func(ctx context.Context, d time.Duration) error

// Option customises a Simulation
type Option func(*Simulation)

// WithObserver registers fn to be called after each generation
func WithObserver(fn Observer) Option {
	return func(s *Simulation) { s.observer = fn }
}

// WithLogger sets the logger used for run transitions
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSleeper replaces the timer used between generations
func WithSleeper(fn Sleeper) Option {
	return func(s *Simulation) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Simulation owns a live grid and its starting configuration and drives
// generations through a single run loop.
type Simulation struct {
	mu       sync.Mutex
	grid     *Grid
	starting *Grid
	state    RunState
	// run identifies the active run loop; Start and Reset advance it
	run        uint64
	done       chan struct{}
	generation int

	delay    time.Duration
	workers  int
	pool     *GridPool
	stats    *utils.Stats
	lastStep time.Time

	logger   *slog.Logger
	observer Observer
	sleep    Sleeper
}

// NewSimulation builds an idle simulation with an all-dead grid
func NewSimulation(cfg utils.Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "[NewSimulation] invalid config")
	}

	grid, err := NewGrid(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, errors.Wrap(err, "[NewSimulation] live grid")
	}
	starting, err := NewGrid(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, errors.Wrap(err, "[NewSimulation] starting configuration")
	}

	s := &Simulation{
		grid:     grid,
		starting: starting,
		state:    Idle,
		delay:    cfg.Delay,
		workers:  cfg.Workers,
		stats:    utils.NewStats(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sleep:    sleepContext,
	}
	if cfg.UseMemoryPool {
		s.pool = NewGridPool()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start captures the starting configuration and launches the run loop.
// It returns false without doing anything if a run is already in progress.
func (s *Simulation) Start(ctx context.Context) bool {
	s.mu.Lock()
	if s.state == Running {
		s.mu.Unlock()
		s.logger.Debug("start ignored, already running")
		return false
	}

	s.captureStartingConfiguration()
	s.state = Running
	s.run++
	id := s.run
	done := make(chan struct{})
	s.done = done
	s.lastStep = time.Now()
	alive := s.grid.CountLivingCells()
	s.mu.Unlock()

	s.logger.Debug("run started", "run", id, "alive", alive)
	go s.loop(ctx, id, done)
	return true
}

// captureStartingConfiguration marks every living cell. Marks from earlier
// runs are kept until Reset consumes them.
func (s *Simulation) captureStartingConfiguration() {
	if err := s.starting.sameShape("captureStartingConfiguration", s.grid); err != nil {
		panic(err)
	}
	for r := range s.grid.rows {
		for c := range s.grid.cols {
			if s.grid.cells[r][c] {
				s.starting.cells[r][c] = true
			}
		}
	}
}

func (s *Simulation) loop(ctx context.Context, id uint64, done chan struct{}) {
	defer close(done)

	for s.isActive(id) {
		if err := s.sleep(ctx, s.delay); err != nil {
			s.halt(id, err)
			return
		}

		frame, ok := s.advance(id)
		if !ok {
			return
		}
		if s.observer != nil {
			s.observer(frame)
		}
		if frame.State != Running {
			return
		}
	}
}

func (s *Simulation) isActive(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Running && s.run == id
}

// halt stops run id if it is still the active run
func (s *Simulation) halt(id uint64, cause error) {
	s.mu.Lock()
	stopped := s.state == Running && s.run == id
	if stopped {
		s.state = Stopped
	}
	s.mu.Unlock()

	if stopped {
		s.logger.Debug("run halted", "run", id, "cause", cause)
	}
}

// advance computes and commits one generation for run id
func (s *Simulation) advance(id uint64) (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Running || s.run != id {
		return Frame{}, false
	}

	next, alive, err := s.grid.NextGeneration(s.workers, s.pool)
	if err != nil {
		s.state = Stopped
		s.logger.Error("generation failed", "run", id, "generation", s.generation, "err", err)
		return Frame{}, false
	}
	if err = s.grid.Apply(next); err != nil {
		panic(errors.Wrap(err, "[advance] commit"))
	}
	GridToPool(next, s.pool)

	s.generation++
	now := time.Now()
	s.stats.Update(s.generation, alive, now.Sub(s.lastStep))
	s.lastStep = now

	if alive == 0 {
		s.state = Stopped
		s.logger.Debug("run ended, no living cells", "run", id, "generation", s.generation)
	}
	return s.frameLocked(), true
}

// Pause stops a running simulation at the next generation boundary
func (s *Simulation) Pause() {
	s.mu.Lock()
	paused := s.state == Running
	if paused {
		s.state = Stopped
	}
	gen := s.generation
	s.mu.Unlock()

	if paused {
		s.logger.Debug("run paused", "generation", gen)
	}
}

// Reset stops any run. If a starting configuration was captured the grid
// returns to it and the capture is discarded; otherwise the grid is cleared.
func (s *Simulation) Reset() {
	s.mu.Lock()
	s.state = Idle
	s.run++
	s.generation = 0
	s.stats.Restart()

	restored := s.starting.Any()
	if restored {
		if err := s.grid.Apply(s.starting); err != nil {
			panic(errors.Wrap(err, "[Reset] restore starting configuration"))
		}
		s.starting.Clear()
	} else {
		s.grid.Clear()
	}
	alive := s.grid.CountLivingCells()
	s.mu.Unlock()

	s.logger.Debug("reset", "restored", restored, "alive", alive)
}

// Wait blocks until the most recently started run loop has exited
func (s *Simulation) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Toggle flips one cell. It reports false and changes nothing while running.
func (s *Simulation) Toggle(row, col int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.grid.checkBounds("Toggle", row, col); err != nil {
		return false, err
	}
	if s.state == Running {
		return false, nil
	}
	_, err := s.grid.Toggle(row, col)
	return err == nil, err
}

// ToggleStartingCell flips one mark of the starting configuration
func (s *Simulation) ToggleStartingCell(row, col int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.starting.Toggle(row, col)
	return err
}

// Seed replaces the live grid with a named pattern. It reports false and
// changes nothing while running.
func (s *Simulation) Seed(pattern string, density float64, seed int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running {
		return false, nil
	}
	if err := s.grid.seedPattern(pattern, density, seed); err != nil {
		return false, err
	}
	return true, nil
}

// CellState returns the current state of one cell
func (s *Simulation) CellState(row, col int) (rules.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Get(row, col)
}

// RunState returns the current control state
func (s *Simulation) RunState() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generation returns the number of generations since the last Reset
func (s *Simulation) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// AliveCount returns the number of living cells
func (s *Simulation) AliveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.CountLivingCells()
}

func (s *Simulation) Rows() int { return s.grid.GetRows() }

func (s *Simulation) Cols() int { return s.grid.GetCols() }

func (s *Simulation) Delay() time.Duration { return s.delay }

// Snapshot returns a copy of the board and counters
func (s *Simulation) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

func (s *Simulation) frameLocked() Frame {
	return Frame{
		Generation: s.generation,
		Alive:      s.grid.CountLivingCells(),
		State:      s.state,
		Cells:      s.grid.Cells(),
	}
}

// StartingConfiguration returns the marked cells of the starting configuration
func (s *Simulation) StartingConfiguration() []Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starting.LiveCells()
}

// Stats returns a copy of the run statistics
func (s *Simulation) Stats() utils.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.stats
}
