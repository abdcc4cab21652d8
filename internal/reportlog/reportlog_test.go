package reportlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ea-sentinel/internal/types"
)

func TestAppendAndReadDay(t *testing.T) {
	l := New(t.TempDir())

	first := types.AnalysisReport{Source: "csv", TradeCount: 2, Stats: types.TradeStats{NetProfit: -30}}
	second := types.AnalysisReport{Source: "myfxbook", TradeCount: 7, Stats: types.TradeStats{NetProfit: 12.5}}
	if err := l.Append(first); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(second); err != nil {
		t.Fatal(err)
	}

	got, err := l.ReadDay(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(got))
	}
	if got[0].Source != "csv" || got[1].TradeCount != 7 {
		t.Errorf("unexpected reports: %+v", got)
	}
}

func TestReadDayMissingFile(t *testing.T) {
	l := New(t.TempDir())
	got, err := l.ReadDay(time.Now().AddDate(0, 0, -3))
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected nil for missing day, got %+v", got)
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)

	old := filepath.Join(dir, "2020-01-01.jsonl")
	if err := os.WriteFile(old, []byte(`{"source":"csv"}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	if err := l.CompressOlder(7); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expected old file to be removed")
	}
	if _, err := os.Stat(old + ".gz"); err != nil {
		t.Errorf("expected gzip archive: %v", err)
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	l := New(t.TempDir())
	if err := l.CompressOlder(0); err != nil {
		t.Fatal(err)
	}
}
