// Package stats computes the final report of a typing session.
package stats

import (
	"errors"
	"time"

	"github.com/verte-zerg/tipo/internal/session"
)

// ErrNotCompleted is returned when a report is requested for a session that
// has not finished. Correct integrations never hit this.
var ErrNotCompleted = errors.New("session not completed")

// ErrDegenerateTiming is returned when the session elapsed no measurable
// time. Callers should treat it as "too short to report" and rerun.
var ErrDegenerateTiming = errors.New("elapsed time too short to measure")

// Report summarizes one completed session.
type Report struct {
	TotalChars     int
	CorrectChars   int
	IncorrectChars int
	// Accuracy is CorrectChars over TotalChars, in [0, 1].
	Accuracy float64
	// WPM uses the conventional 5-characters-per-word normalization.
	WPM     float64
	Elapsed time.Duration
}

// Compute derives the report from a completed session snapshot and its
// elapsed time. Only outcomes standing at completion count; positions that
// were mistyped and corrected along the way count as correct.
func Compute(snap session.Snapshot, elapsed time.Duration) (Report, error) {
	if snap.Phase != session.PhaseCompleted {
		return Report{}, ErrNotCompleted
	}
	if elapsed <= 0 {
		return Report{}, ErrDegenerateTiming
	}

	report := Report{
		TotalChars: len(snap.Target),
		Elapsed:    elapsed,
	}
	for _, outcome := range snap.Outcomes {
		switch outcome.Status {
		case session.Correct:
			report.CorrectChars++
		case session.Incorrect:
			report.IncorrectChars++
		}
	}

	minutes := elapsed.Minutes()
	report.Accuracy = float64(report.CorrectChars) / float64(report.TotalChars)
	report.WPM = (float64(report.TotalChars) / 5.0) / minutes
	return report, nil
}
