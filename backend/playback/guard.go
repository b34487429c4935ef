// Package playback enforces watch-don't-skip semantics for chapter
// videos. A Guard tracks one playback session: it keeps the watched
// frontier monotonic, rejects seeks past it, latches completion at the
// 90% threshold and persists progress on a throttled, best-effort
// cadence.
package playback

import (
	"log"
	"sync"
	"time"

	"github.com/Developersbbs/key-system-client-sub001/backend/progress"
)

const (
	// SeekTolerance is how many seconds past the watched frontier the
	// playhead may drift before a tick counts as an unauthorized skip.
	SeekTolerance = 5.0

	// ResumeThreshold: saved progress at or below this many seconds is
	// treated as a fresh start, not worth seeking for.
	ResumeThreshold = 5.0

	saveInterval = 10 * time.Second
)

const (
	StatusOK     = "ok"
	StatusRewind = "rewind"
)

// SaveRequest carries one progress write to the backing store.
type SaveRequest struct {
	UserID          uint
	CourseID        uint
	ChapterID       uint
	WatchedDuration float64
	TotalDuration   float64
}

// ProgressSaver persists watch progress. Saves are best effort; a
// failed save is logged and dropped, never surfaced to playback.
type ProgressSaver interface {
	SaveProgress(req SaveRequest) error
}

// TickResult is the guard's verdict on a single playback tick.
type TickResult struct {
	Status    string  `json:"status"`
	SeekTo    float64 `json:"seekTo"`
	Completed bool    `json:"completed"`
}

type Guard struct {
	mu            sync.Mutex
	userID        uint
	courseID      uint
	chapterID     uint
	maxWatched    float64
	totalDuration float64
	completed     bool
	lastSave      time.Time

	saver  ProgressSaver
	logger *log.Logger
	now    func() time.Time
}

func NewGuard(userID, courseID, chapterID uint, saver ProgressSaver, logger *log.Logger) *Guard {
	return &Guard{
		userID:    userID,
		courseID:  courseID,
		chapterID: chapterID,
		saver:     saver,
		logger:    logger,
		now:       time.Now,
	}
}

// Resume seeds the guard with previously saved state and returns the
// position playback should start from. Progress at or below
// ResumeThreshold is discarded as a fresh start.
func (g *Guard) Resume(watched, total float64, completed bool) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if total > 0 {
		g.totalDuration = total
	}
	g.completed = completed
	if watched <= ResumeThreshold {
		return 0
	}
	g.maxWatched = watched
	return watched
}

// SetTotalDuration records the real duration once video metadata is
// available. Until then skip detection and completion are suppressed.
func (g *Guard) SetTotalDuration(d float64) {
	if d <= 0 {
		return
	}
	g.mu.Lock()
	g.totalDuration = d
	g.mu.Unlock()
}

// Tick processes one playback time update. It runs at native tick rate
// so everything here is cheap; the actual write is throttled to the
// save cadence and detached.
func (g *Guard) Tick(position float64) TickResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.totalDuration <= 0 {
		// No metadata yet: keep tracking the frontier, but suppress
		// skip detection, completion and saves until the real
		// duration is known.
		if position > g.maxWatched {
			g.maxWatched = position
		}
		return TickResult{Status: StatusOK, Completed: g.completed}
	}

	if position > g.maxWatched+SeekTolerance && !g.completed {
		// Unauthorized skip: force the playhead back, leave all
		// progress state untouched for this tick.
		return TickResult{Status: StatusRewind, SeekTo: g.maxWatched}
	}

	if !g.completed && progress.IsCompleted(position, g.totalDuration) {
		g.completed = true
	}
	if position > g.maxWatched {
		g.maxWatched = position
	}

	if g.now().Sub(g.lastSave) >= saveInterval {
		g.lastSave = g.now()
		g.persistAsync()
	}

	return TickResult{Status: StatusOK, SeekTo: position, Completed: g.completed}
}

// Completed reports whether the session has crossed the completion
// threshold. It never reverts.
func (g *Guard) Completed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.completed
}

// MaxWatched returns the current watched frontier in seconds.
func (g *Guard) MaxWatched() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.maxWatched
}

// Flush writes the current state synchronously. Called when a session
// ends so the last partial interval is not lost.
func (g *Guard) Flush() error {
	g.mu.Lock()
	req := g.saveRequest()
	g.mu.Unlock()
	return g.saver.SaveProgress(req)
}

func (g *Guard) saveRequest() SaveRequest {
	return SaveRequest{
		UserID:          g.userID,
		CourseID:        g.courseID,
		ChapterID:       g.chapterID,
		WatchedDuration: g.maxWatched,
		TotalDuration:   g.totalDuration,
	}
}

// persistAsync fires a detached save. Failures are swallowed: losing a
// tick of telemetry must never interrupt playback.
func (g *Guard) persistAsync() {
	req := g.saveRequest()
	go func() {
		if err := g.saver.SaveProgress(req); err != nil && g.logger != nil {
			g.logger.Printf("playback: dropped progress save for chapter %d: %v", req.ChapterID, err)
		}
	}()
}
