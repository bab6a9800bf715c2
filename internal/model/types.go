// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Problems   int
	WordList   string
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
	WeakWindow int
	Segmenter  string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
	Chars       string
}

// RoundStats captures one finished problem.
type RoundStats struct {
	Index      int
	Target     string
	DurationMs int64
	Accuracy   int
	Speed      int
	Chars      int
	Wrong      int
}

// SessionStats captures a completed practice session.
type SessionStats struct {
	StartedAt    time.Time
	EndedAt      time.Time
	Problems     int
	WordListPath string
	Chars        int
	DurationMs   int64
	AvgAccuracy  float64
	AvgSpeed     int
	Score        int
}

// CharStats stores per-character stats for a session.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID   int64
	EndedAt     time.Time
	Problems    int
	Chars       int
	DurationMs  int64
	AvgAccuracy float64
	AvgSpeed    int
	Score       int
}
