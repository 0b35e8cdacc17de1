package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFullyDissolved BookmarkType = "fully_dissolved"
	BookmarkFullyRestored  BookmarkType = "fully_restored"
	BookmarkPhaseFlip      BookmarkType = "phase_flip"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Progress    float64      `csv:"progress" json:"progress"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"progress", b.Progress,
		"description", b.Description,
	)
}

// BookmarkDetector detects the moments a dissolve cycle passes through its extremes.
// Each extreme fires once on entry and re-arms when the surface leaves it.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	dissolved bool
	restored  bool
	seen      bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 2 {
		historySize = 2
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFullyDissolved(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkFullyRestored(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPhaseFlip(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	bd.seen = true

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// History returns the recorded windows, oldest first.
func (bd *BookmarkDetector) History() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]WindowStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) checkFullyDissolved(stats WindowStats) *Bookmark {
	total := stats.SurfaceVisible() + stats.SurfaceDiscarded
	now := total > 0 && stats.SurfaceVisible() == 0
	fire := now && !bd.dissolved
	bd.dissolved = now
	if !fire {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkFullyDissolved,
		Tick:        stats.WindowEndTick,
		Progress:    stats.Progress,
		Description: fmt.Sprintf("All %d surface vertices discarded at progress %.2f", total, stats.Progress),
	}
}

func (bd *BookmarkDetector) checkFullyRestored(stats WindowStats) *Bookmark {
	now := stats.SurfaceVisible() > 0 && stats.SurfaceDiscarded == 0
	// A scene that starts whole is not a restoration
	fire := now && !bd.restored && bd.seen
	bd.restored = now
	if !fire {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkFullyRestored,
		Tick:        stats.WindowEndTick,
		Progress:    stats.Progress,
		Description: fmt.Sprintf("Surface whole again at progress %.2f", stats.Progress),
	}
}

func (bd *BookmarkDetector) checkPhaseFlip(stats WindowStats) *Bookmark {
	if stats.Flips == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPhaseFlip,
		Tick:        stats.WindowEndTick,
		Progress:    stats.Progress,
		Description: fmt.Sprintf("%d phase flip(s), now %s", stats.Flips, stats.Phase),
	}
}
