package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tutor.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='llm_request_events'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("expected llm_request_events table: %v", err)
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutor.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(t.Context(), LLMRequestEventData{Purpose: "lesson-content", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(t.Context(), QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event after reopen, got %d", len(events))
	}
}

func TestAppendAndGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	err := repo.AppendLLMRequest(t.Context(), LLMRequestEventData{
		Provider:     "gpt-4",
		Model:        "gpt-4-0613",
		Purpose:      "lesson-content",
		InputTokens:  120,
		OutputTokens: 640,
		LatencyMs:    2100,
		Success:      true,
		RequestBody:  "[system]\nYou are an expert tutor.",
		ResponseBody: `{"hook":{}}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	e, err := repo.GetLLMEvent(t.Context(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event 1")
	}
	if !e.Success || e.Model != "gpt-4-0613" || e.OutputTokens != 640 {
		t.Fatalf("unexpected event: %+v", e)
	}
	if !e.Timestamp.Equal(fixed) {
		t.Fatalf("timestamp = %v, want %v", e.Timestamp, fixed)
	}
	if e.ResponseBody != `{"hook":{}}` {
		t.Fatalf("response body = %q", e.ResponseBody)
	}

	missing, err := repo.GetLLMEvent(t.Context(), 99)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}
}

func TestQueryLLMEventsFiltersAndOrders(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()

	for _, purpose := range []string{"lesson-content", "tutor-reply", "tutor-reply", "quiz"} {
		if err := repo.AppendLLMRequest(t.Context(), LLMRequestEventData{Purpose: purpose, Success: true}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(t.Context(), QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 4 || all[0].Purpose != "quiz" {
		t.Fatalf("expected 4 events newest first, got %+v", all)
	}

	replies, err := repo.QueryLLMEvents(t.Context(), QueryOpts{Purpose: "tutor-reply"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(replies) != 2 {
		t.Fatalf("expected 2 tutor-reply events, got %d", len(replies))
	}

	limited, err := repo.QueryLLMEvents(t.Context(), QueryOpts{Limit: 1, Before: 4})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != 3 {
		t.Fatalf("expected event 3, got %+v", limited)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()

	events := []LLMRequestEventData{
		{Model: "gpt-4", Purpose: "quiz", InputTokens: 100, OutputTokens: 50, LatencyMs: 100, Success: true},
		{Model: "gpt-4", Purpose: "quiz", InputTokens: 200, OutputTokens: 70, LatencyMs: 300, Success: true},
		{Model: "gpt-4o", Purpose: "tutor-reply", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, ErrorKind: "timeout"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(t.Context(), e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(t.Context())
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	quiz := byPurpose[0]
	if quiz.Purpose != "quiz" || quiz.Calls != 2 || quiz.InputTokens != 300 || quiz.AvgLatencyMs != 200 {
		t.Fatalf("unexpected quiz usage: %+v", quiz)
	}
	if byPurpose[1].Failures != 1 {
		t.Fatalf("expected 1 tutor-reply failure, got %+v", byPurpose[1])
	}

	byModel, err := repo.LLMUsageByModel(t.Context())
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gpt-4" || byModel[0].OutputTokens != 120 {
		t.Fatalf("unexpected model usage: %+v", byModel)
	}
}
