package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/kanape/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "kanape.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertSession(t *testing.T, st *Store, ended time.Time, score int, chars []model.CharStats) int64 {
	t.Helper()
	stats := model.SessionStats{
		StartedAt:    ended.Add(-time.Minute),
		EndedAt:      ended,
		Problems:     2,
		WordListPath: "default",
		Chars:        5,
		DurationMs:   60000,
		AvgAccuracy:  87.5,
		AvgSpeed:     5,
		Score:        score,
	}
	rounds := []model.RoundStats{
		{Index: 0, Target: "ねこ", DurationMs: 20000, Accuracy: 100, Speed: 6, Chars: 2},
		{Index: 1, Target: "がっこう", DurationMs: 40000, Accuracy: 75, Speed: 6, Chars: 4, Wrong: 1},
	}
	id, err := st.InsertSession(context.Background(), stats, rounds, chars)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	return id
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first := insertSession(t, st, base, 10, nil)
	second := insertSession(t, st, base.Add(24*time.Hour), 30, nil)

	ctx := context.Background()
	sessions, err := st.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 || sessions[0].SessionID != first || sessions[1].SessionID != second {
		t.Fatalf("unexpected sessions: %+v", sessions)
	}
	if sessions[0].AvgAccuracy != 87.5 || sessions[0].Problems != 2 || sessions[0].Chars != 5 {
		t.Fatalf("unexpected aggregate: %+v", sessions[0])
	}
	if !sessions[1].EndedAt.Equal(base.Add(24 * time.Hour)) {
		t.Fatalf("unexpected ended at: %v", sessions[1].EndedAt)
	}

	since := base.Add(time.Hour)
	sessions, err = st.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list sessions since: %v", err)
	}
	if len(sessions) != 1 || sessions[0].SessionID != second {
		t.Fatalf("since filter failed: %+v", sessions)
	}
}

func TestBestSessions(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	insertSession(t, st, base, 10, nil)
	best := insertSession(t, st, base.Add(time.Hour), 50, nil)
	insertSession(t, st, base.Add(2*time.Hour), 20, nil)

	top, err := st.BestSessions(context.Background(), 2)
	if err != nil {
		t.Fatalf("best sessions: %v", err)
	}
	if len(top) != 2 || top[0].SessionID != best || top[1].Score != 20 {
		t.Fatalf("unexpected best sessions: %+v", top)
	}
	none, err := st.BestSessions(context.Background(), 0)
	if err != nil || none != nil {
		t.Fatalf("expected nil for zero limit, got %v %v", none, err)
	}
}

func TestListRounds(t *testing.T) {
	st := openTestStore(t)
	id := insertSession(t, st, time.Now(), 10, nil)
	rounds, err := st.ListRounds(context.Background(), id)
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}
	if rounds[1].Target != "がっこう" || rounds[1].Wrong != 1 || rounds[1].Accuracy != 75 {
		t.Fatalf("unexpected round: %+v", rounds[1])
	}
}

func TestCharAggregates(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	chars := []model.CharStats{
		{Char: "ね", Correct: 2, Incorrect: 1, LatencySumMs: 300, LatencyCount: 2},
		{Char: "が", Correct: 1, Incorrect: 2},
	}
	first := insertSession(t, st, base, 10, chars)
	second := insertSession(t, st, base.Add(time.Hour), 10, chars[:1])

	ctx := context.Background()
	aggs, err := st.ListCharAggregatesForSessions(ctx, []int64{first, second})
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	byChar := map[string]model.CharAggregate{}
	for _, a := range aggs {
		byChar[a.Char] = a
	}
	if byChar["ね"].Correct != 4 || byChar["ね"].LatencySumMs != 600 || byChar["が"].Incorrect != 2 {
		t.Fatalf("unexpected aggregates: %+v", byChar)
	}

	weak, err := st.GetWeakChars(ctx, 1)
	if err != nil {
		t.Fatalf("weak chars: %v", err)
	}
	if len(weak) != 1 || weak[0].Char != "ね" {
		t.Fatalf("weak window should only cover the latest session: %+v", weak)
	}

	perSession, err := st.ListCharStatsForSessions(ctx, []int64{first, second}, []string{"が"})
	if err != nil {
		t.Fatalf("per-session stats: %v", err)
	}
	if _, ok := perSession[first]["が"]; !ok {
		t.Fatalf("missing per-session stats for first session: %+v", perSession)
	}
	if _, ok := perSession[second]; ok {
		t.Fatalf("second session has no が stats: %+v", perSession)
	}
}

func TestEmptyInputs(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if aggs, err := st.ListCharAggregatesForSessions(ctx, nil); err != nil || aggs != nil {
		t.Fatalf("expected nil aggregates, got %v %v", aggs, err)
	}
	if weak, err := st.GetWeakChars(ctx, 0); err != nil || weak != nil {
		t.Fatalf("expected nil weak chars, got %v %v", weak, err)
	}
	got, err := st.ListCharStatsForSessions(ctx, nil, []string{"ね"})
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty map, got %v %v", got, err)
	}
}

func TestInsertSessionRollsBackOnDuplicateChar(t *testing.T) {
	st := openTestStore(t)
	chars := []model.CharStats{{Char: "ね", Correct: 1}, {Char: "ね", Correct: 1}}
	stats := model.SessionStats{StartedAt: time.Now(), EndedAt: time.Now()}
	if _, err := st.InsertSession(context.Background(), stats, nil, chars); err == nil {
		t.Fatalf("expected primary key violation")
	}
	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected rollback, got %d sessions", len(sessions))
	}
}
