package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"newsease/internal/domain"
	"newsease/internal/feed"
	"newsease/internal/infrastructure/storage"
	"newsease/internal/ports"
	"newsease/internal/usecase"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsease.yaml")
	raw := `
logging:
  level: error
store:
  driver: memory
refresh:
  mockLatency: 1ms
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRunJSONListing(t *testing.T) {
	var out bytes.Buffer
	args := []string{"--config", writeConfig(t), "--json", "--trending", "--stats", "--limit", "5"}
	if err := run(args, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var rep struct {
		Status   string `json:"status"`
		Articles []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			Age   string `json:"age"`
		} `json:"articles"`
		Trending struct {
			Topics []struct {
				Keyword string `json:"keyword"`
			} `json:"topics"`
		} `json:"trending"`
		Stats *struct {
			WeeklyGoal int `json:"weeklyReadingGoal"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	if len(rep.Articles) != 5 || rep.Status != "20 articles" {
		t.Fatalf("unexpected listing: status %q, %d articles", rep.Status, len(rep.Articles))
	}
	if rep.Articles[0].ID == "" || !strings.HasSuffix(rep.Articles[0].Age, "ago") {
		t.Fatalf("unexpected article %+v", rep.Articles[0])
	}
	if len(rep.Trending.Topics) == 0 || rep.Stats == nil || rep.Stats.WeeklyGoal != 50 {
		t.Fatalf("missing trending or stats sections")
	}
}

func TestRunTextSearch(t *testing.T) {
	var out bytes.Buffer
	args := []string{"--config", writeConfig(t), "--search", "electric cars", "--history"}
	if err := run(args, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	if !strings.HasPrefix(text, "5 articles") {
		t.Fatalf("unexpected status line in %q", text)
	}
	if !strings.Contains(text, "Experts Discuss the Future of Electric Cars") {
		t.Fatalf("search results missing from %q", text)
	}
	if !strings.Contains(text, "Recent searches\n  electric cars") {
		t.Fatalf("history missing from %q", text)
	}
}

func TestRunRejectsUnknownCategory(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"--config", writeConfig(t), "--category", "weather"}, &out); err == nil {
		t.Fatalf("expected unknown category error")
	}
}

func writeSQLiteConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "newsease.yaml")
	raw := fmt.Sprintf(`
logging:
  level: error
store:
  driver: sqlite
  sqlitePath: %q
refresh:
  mockLatency: 1ms
`, filepath.Join(dir, "newsease.db"))
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

type cliReport struct {
	RefreshInterval string `json:"refreshInterval"`
	Articles        []struct {
		ID string `json:"id"`
	} `json:"articles"`
	Origin string `json:"origin"`
	Local  []struct {
		ID       string `json:"id"`
		Distance string `json:"distance"`
	} `json:"local"`
	Stats *struct {
		TotalRead        int           `json:"totalArticlesRead"`
		TimeSpentReading time.Duration `json:"timeSpentReading"`
	} `json:"stats"`
	Downloaded *struct {
		ID      string `json:"id"`
		Content string `json:"downloadedContent"`
	} `json:"downloaded"`
	Summary *struct {
		Total      int      `json:"total"`
		Local      int      `json:"local"`
		Categories []string `json:"categories"`
	} `json:"summary"`
}

func runJSON(t *testing.T, args ...string) cliReport {
	t.Helper()
	var out bytes.Buffer
	if err := run(append(args, "--json"), &out); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	var rep cliReport
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	return rep
}

func TestRunLocalListingWithDistances(t *testing.T) {
	rep := runJSON(t, "--config", writeConfig(t), "--local", "--radius", "200")

	if rep.Origin != "37.774900, -122.419400" {
		t.Fatalf("unexpected origin %q", rep.Origin)
	}
	if len(rep.Local) != feed.PreviewLimit {
		t.Fatalf("expected %d local articles, got %d", feed.PreviewLimit, len(rep.Local))
	}
	for _, a := range rep.Local {
		if !strings.HasSuffix(a.Distance, "m") {
			t.Fatalf("missing distance on %+v", a)
		}
	}

	tight := runJSON(t, "--config", writeConfig(t), "--local", "--radius", "0.001")
	if len(tight.Local) != 0 {
		t.Fatalf("a 1 m radius should drop every article, got %d", len(tight.Local))
	}
}

func TestRunPersistsActionsAcrossInvocations(t *testing.T) {
	cfg := writeSQLiteConfig(t)

	first := runJSON(t, "--config", cfg)
	if len(first.Articles) == 0 || first.RefreshInterval != string(domain.RefreshThirtyMinutes) {
		t.Fatalf("unexpected first run %+v", first)
	}
	id := first.Articles[0].ID

	read := runJSON(t, "--config", cfg, "--read", id, "--read-time", "2m", "--interval", "1hour", "--stats")
	if read.RefreshInterval != string(domain.RefreshOneHour) {
		t.Fatalf("interval not applied: %q", read.RefreshInterval)
	}
	if read.Stats == nil || read.Stats.TotalRead != 1 || read.Stats.TimeSpentReading != 2*time.Minute {
		t.Fatalf("unexpected stats %+v", read.Stats)
	}

	reset := runJSON(t, "--config", cfg, "--reset")
	if reset.RefreshInterval != string(domain.RefreshThirtyMinutes) {
		t.Fatalf("reset should restore the default interval, got %q", reset.RefreshInterval)
	}

	cleared := runJSON(t, "--config", cfg, "--clear-cache")
	if len(cleared.Articles) == 0 || cleared.Articles[0].ID != id {
		t.Fatalf("clearing should keep the articles already loaded")
	}

	refetched := runJSON(t, "--config", cfg)
	if len(refetched.Articles) == 0 || refetched.Articles[0].ID == id {
		t.Fatalf("expected a fresh fetch after clearing the cache")
	}
}

func TestRunRejectsUnknownInterval(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"--config", writeConfig(t), "--interval", "weekly"}, &out); err == nil {
		t.Fatalf("expected unknown interval error")
	}
}

type countingSource struct {
	mu      sync.Mutex
	fetches int
}

func (c *countingSource) Fetch(context.Context, ports.FetchRequest) ([]domain.Article, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches++
	return []domain.Article{{ID: fmt.Sprintf("a%d", c.fetches), Title: "Fetched", Category: domain.CategoryGeneral}}, nil
}

func (c *countingSource) Search(context.Context, string, []domain.Category) ([]domain.Article, error) {
	return nil, nil
}

func (c *countingSource) TopHeadlines(context.Context, string, domain.Category) ([]domain.Article, error) {
	return nil, nil
}

func (c *countingSource) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

func TestApplyRefreshAfterFetchingLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := &countingSource{}
	session := usecase.NewSession(usecase.SessionDeps{Source: src, Store: storage.NewMemoryStore()})

	fetched, err := session.LoadInitial(ctx)
	if err != nil || !fetched {
		t.Fatalf("load: fetched=%v err=%v", fetched, err)
	}
	if err := apply(ctx, session, options{refresh: true}, fetched); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if src.count() != 1 {
		t.Fatalf("expected a single fetch, got %d", src.count())
	}

	if err := apply(ctx, session, options{refresh: true}, false); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if src.count() != 2 {
		t.Fatalf("refresh on a cached load should fetch, got %d", src.count())
	}
}

func TestRunPreferenceFlagsShapeNextRefresh(t *testing.T) {
	cfg := writeSQLiteConfig(t)

	first := runJSON(t, "--config", cfg, "--summary")
	if first.Summary == nil || first.Summary.Total == 0 || first.Summary.Local == 0 {
		t.Fatalf("unexpected summary %+v", first.Summary)
	}
	id := first.Articles[0].ID

	saved := runJSON(t, "--config", cfg, "--download", id, "--toggle-category", "sports", "--local-news=false")
	if saved.Downloaded == nil || saved.Downloaded.ID != id || saved.Downloaded.Content == "" {
		t.Fatalf("unexpected download %+v", saved.Downloaded)
	}

	refreshed := runJSON(t, "--config", cfg, "--refresh", "--summary", "--unblock", "nobody")
	if refreshed.Summary == nil || refreshed.Summary.Total == 0 {
		t.Fatalf("expected articles after refresh")
	}
	if refreshed.Summary.Local != 0 {
		t.Fatalf("local news disabled, got %d local articles", refreshed.Summary.Local)
	}
	for _, c := range refreshed.Summary.Categories {
		if c == string(domain.CategorySports) {
			t.Fatalf("sports was deselected but still fetched: %v", refreshed.Summary.Categories)
		}
	}
}
