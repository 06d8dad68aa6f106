// Package engine runs a falling-word session: it spawns items from the active
// content pool, moves them down the playfield, resolves hits into score and
// drives the Idle/Ready/Active/Paused lifecycle.
//
// All session state lives behind one mutex. Periodic work runs in Tasks that
// take the lock for each tick, so every tick, command and hit is a single
// atomic step. Ticks scheduled before the session last left Active carry a
// stale generation and do nothing.
package engine

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/registry"
	"github.com/samber/lo"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRand sets the random source for ids, content draws and placement.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithMeasurer sets how item text is sized.
func WithMeasurer(m Measurer) Option {
	return func(e *Engine) { e.measurer = m }
}

// WithManualTicks disables the background tasks. The host drives the session
// with TickSpawn, TickMotion and TickClock instead.
func WithManualTicks() Option {
	return func(e *Engine) { e.manual = true }
}

// Engine owns one Session and the tasks that animate it.
type Engine struct {
	mu sync.Mutex

	cfg      Config
	catalog  *content.Catalog
	logger   *log.Logger
	rng      *rand.Rand
	measurer Measurer
	manual   bool

	session   *Session
	scheduler *Scheduler
	spawnIdx  int
	motionIdx int
	clockIdx  int

	generation uint64
	tasks      []*Task
	retired    []*Task
	closed     bool

	pending     []Event
	subscribers []subscriber
	nextSubID   int
}

// New creates an engine in the Idle state.
func New(catalog *content.Catalog, cfg Config, opts ...Option) (*Engine, error) {
	if catalog == nil {
		panic("engine: nil catalog")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		catalog: catalog,
		logger:  log.New(os.Stderr, "wordfall: ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.measurer == nil {
		e.measurer = RuneMeasurer{CharWidth: cfg.CharWidth, Padding: cfg.TextPadding}
	}

	e.session = newSession(registry.New(cfg.MaxConcurrent, e.rng))

	e.scheduler = NewScheduler()
	e.spawnIdx = e.scheduler.Register(&SpawnSystem{Rand: e.rng, Measurer: e.measurer}, cfg.SpawnInterval)
	e.motionIdx = e.scheduler.Register(MotionSystem{}, cfg.FrameInterval)
	e.clockIdx = e.scheduler.Register(ClockSystem{}, cfg.ClockInterval)

	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Catalog returns the catalog lists are selected from.
func (e *Engine) Catalog() *content.Catalog {
	return e.catalog
}

// SelectList picks a word list and category and moves to Ready with a clean
// slate. The current mode is kept.
func (e *Engine) SelectList(id string, category int) error {
	e.mu.Lock()
	err := e.selectLocked(id, category, e.session.Mode)
	events := e.drain()
	e.mu.Unlock()

	e.dispatch(events)
	return err
}

// SetCategory switches the scored category of the selected list.
func (e *Engine) SetCategory(category int) error {
	e.mu.Lock()
	var err error
	if e.session.List == nil && !e.closed {
		err = ErrNoListSelected
	} else {
		err = e.selectLocked(e.session.listID(), category, e.session.Mode)
	}
	events := e.drain()
	e.mu.Unlock()

	e.dispatch(events)
	return err
}

// SetMode switches between category and common-word play. With a list
// selected this restarts from Ready like SelectList.
func (e *Engine) SetMode(mode content.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	e.mu.Lock()
	var err error
	switch {
	case e.closed:
		err = ErrClosed
	case e.session.List == nil:
		e.session.Mode = mode
	default:
		err = e.selectLocked(e.session.listID(), e.session.Category, mode)
	}
	events := e.drain()
	e.mu.Unlock()

	e.dispatch(events)
	return err
}

func (e *Engine) selectLocked(id string, category int, mode content.Mode) error {
	if e.closed {
		return ErrClosed
	}
	list, ok := e.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownList, id)
	}
	if category != 0 && category != 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCategory, category)
	}

	e.stopTasksLocked()

	s := e.session
	s.List = list
	s.Category = category
	s.Mode = mode
	s.rebuildPool()
	s.resetRound()
	if s.PoolErr != nil {
		e.logger.Printf("List %q category %d (%s): %v, spawning sentinel only", id, category, mode, s.PoolErr)
	}

	e.logger.Printf("Selected list %q category %q mode %s", id, list.CategoryNames[category], mode)
	e.setStateLocked(StateReady)
	return nil
}

// Start begins a round. Score, time and items are always reset first, also
// when resuming from Paused.
func (e *Engine) Start() error {
	e.mu.Lock()
	err := e.startLocked()
	events := e.drain()
	e.mu.Unlock()

	e.dispatch(events)
	return err
}

func (e *Engine) startLocked() error {
	if e.closed {
		return ErrClosed
	}
	if e.session.List == nil {
		return ErrNoListSelected
	}

	e.stopTasksLocked()
	e.session.resetRound()
	e.session.ID = uuid.New()
	e.setStateLocked(StateActive)
	e.startTasksLocked()

	e.logger.Printf("Started session %s", e.session.ID)
	return nil
}

// Pause stops every task and keeps score and items on screen.
func (e *Engine) Pause() error {
	e.mu.Lock()
	var err error
	switch {
	case e.closed:
		err = ErrClosed
	case e.session.State != StateActive:
		err = fmt.Errorf("%w: state is %s", ErrNotActive, e.session.State)
	default:
		e.stopTasksLocked()
		e.session.Registry.Compact()
		e.setStateLocked(StatePaused)
		e.logger.Printf("Paused session %s at score %d", e.session.ID, e.session.Score)
	}
	events := e.drain()
	e.mu.Unlock()

	e.dispatch(events)
	return err
}

// Reset returns to Ready (Idle without a list) and clears score, time and
// items. HighScore is kept.
func (e *Engine) Reset() error {
	e.mu.Lock()
	var err error
	if e.closed {
		err = ErrClosed
	} else {
		e.stopTasksLocked()
		e.session.resetRound()
		if e.session.List != nil {
			e.setStateLocked(StateReady)
		} else {
			e.setStateLocked(StateIdle)
		}
	}
	events := e.drain()
	e.mu.Unlock()

	e.dispatch(events)
	return err
}

// SetPlayfield records the host viewport size. Allowed in any state.
func (e *Engine) SetPlayfield(width, height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Playfield = Playfield{Width: width, Height: height}
}

// RestoreHighScore raises HighScore to n, e.g. from host storage.
func (e *Engine) RestoreHighScore(n uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.HighScore = max(e.session.HighScore, n)
}

// PoolStatus returns content.ErrDegenerateContentPool when only the sentinel
// can spawn.
func (e *Engine) PoolStatus() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.PoolErr
}

// Stats returns per-system timing.
func (e *Engine) Stats() *SchedulerStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scheduler.GetStats()
}

// Subscribe registers fn for every future event and returns a function that
// removes it. fn runs on whichever goroutine caused the event, outside the
// engine lock.
func (e *Engine) Subscribe(fn func(Event)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextSubID++
	id := e.nextSubID
	e.subscribers = append(e.subscribers, subscriber{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.subscribers = lo.Reject(e.subscribers, func(s subscriber, _ int) bool { return s.id == id })
	}
}

// Close cancels all tasks, waits for them to exit and rejects later commands.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.stopTasksLocked()
	e.closed = true
	tasks := e.retired
	e.retired = nil
	e.mu.Unlock()

	for _, t := range tasks {
		t.Wait()
	}
	e.logger.Printf("Engine closed")
	return nil
}

func (e *Engine) setStateLocked(state State) {
	e.session.State = state
	e.pending = append(e.pending, Event{
		Kind:  EventStateChanged,
		State: state,
		Score: e.session.Score,
	})
}

func (e *Engine) startTasksLocked() {
	e.generation++
	if e.manual {
		return
	}

	gen := e.generation
	for idx := range e.scheduler.Len() {
		e.tasks = append(e.tasks, Every(e.scheduler.Interval(idx), func() {
			e.tick(idx, gen)
		}))
	}
}

// stopTasksLocked cancels the running tasks. Bumping the generation makes any
// tick already waiting on the lock a no-op.
func (e *Engine) stopTasksLocked() {
	e.generation++
	for _, t := range e.tasks {
		t.Cancel()
	}
	e.retired = append(lo.Reject(e.retired, func(t *Task, _ int) bool { return t.Done() }), e.tasks...)
	e.tasks = nil
}

func (e *Engine) tick(idx int, gen uint64) {
	e.mu.Lock()
	if e.closed || gen != e.generation {
		e.mu.Unlock()
		return
	}
	e.runSystemLocked(idx)
	events := e.drain()
	e.mu.Unlock()

	e.dispatch(events)
}

// TickSpawn runs one spawn tick if the session is Active.
func (e *Engine) TickSpawn() { e.manualTick(e.spawnIdx) }

// TickMotion runs one motion frame if the session is Active.
func (e *Engine) TickMotion() { e.manualTick(e.motionIdx) }

// TickClock adds one elapsed second if the session is Active.
func (e *Engine) TickClock() { e.manualTick(e.clockIdx) }

func (e *Engine) manualTick(idx int) {
	e.mu.Lock()
	if e.closed || e.session.State != StateActive {
		e.mu.Unlock()
		return
	}
	e.runSystemLocked(idx)
	events := e.drain()
	e.mu.Unlock()

	e.dispatch(events)
}

func (e *Engine) runSystemLocked(idx int) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("Recovered panic in %s: %v", e.scheduler.Name(idx), r)
		}
	}()

	frame := newFrame(e.session, &e.cfg)
	e.scheduler.Execute(idx, frame)
	res := frame.Commands.Flush(e.session.Registry)

	for _, item := range res.Evicted {
		e.pending = append(e.pending, Event{Kind: EventMissed, Item: item, State: e.session.State, Score: e.session.Score})
	}
	for _, item := range res.Spawned {
		e.pending = append(e.pending, Event{Kind: EventSpawned, Item: item, State: e.session.State, Score: e.session.Score})
	}
	if res.Rejected > 0 {
		e.logger.Printf("Rejected %d spawns at capacity", res.Rejected)
	}
}

// drain hands back the events collected under the lock.
func (e *Engine) drain() []Event {
	if len(e.pending) == 0 {
		return nil
	}
	events := e.pending
	e.pending = nil
	if len(e.subscribers) == 0 {
		return nil
	}
	return events
}

func (e *Engine) dispatch(events []Event) {
	if len(events) == 0 {
		return
	}
	e.mu.Lock()
	subs := append([]subscriber(nil), e.subscribers...)
	e.mu.Unlock()

	for _, ev := range events {
		for _, s := range subs {
			s.fn(ev)
		}
	}
}
