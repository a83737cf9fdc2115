package ui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"pinecheck/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	model := NewProgressModel("diag", []string{"a.pine", "b.pine", "c.pine"}, events).(*progressModel)

	steps := []driver.Event{
		{File: "a.pine", Stage: driver.StageParse, Status: driver.StatusWorking},
		{File: "a.pine", Stage: driver.StageAnalyze, Status: driver.StatusDone, Warnings: 1},
		{File: "b.pine", Stage: driver.StageAnalyze, Status: driver.StatusError, Errors: 2},
		{File: "b.pine", Stage: driver.StageAnalyze, Status: driver.StatusError, Errors: 2},
		{File: "unknown.pine", Stage: driver.StageAnalyze, Status: driver.StatusDone},
		{File: "c.pine", Stage: driver.StageAnalyze, Status: driver.StatusWorking},
	}
	for _, ev := range steps {
		model.Update(eventMsg(ev))
	}

	if model.finished != 2 || model.errors != 2 || model.warnings != 1 {
		t.Fatalf("finished=%d errors=%d warnings=%d", model.finished, model.errors, model.warnings)
	}
	want := []string{"warnings", "errors", "analyzing"}
	for i, row := range model.rows {
		if got := rowStatus(row); got != want[i] {
			t.Errorf("row %d status %q, want %q", i, got, want[i])
		}
	}
	if got := model.fraction(); math.Abs(got-2.6/3) > 1e-9 {
		t.Errorf("fraction = %v", got)
	}

	model.Update(doneMsg{})
	view := model.View()
	for _, want := range []string{"done: diag [2/3]", "2 errors, 1 warning", "a.pine", "c.pine"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
}

func TestRowStatus(t *testing.T) {
	tests := []struct {
		row  fileRow
		want string
	}{
		{fileRow{stage: driver.StageLoad}, "queued"},
		{fileRow{stage: driver.StageParse}, "parsing"},
		{fileRow{stage: driver.StageCacheHit}, "cached"},
		{fileRow{stage: driver.StageLoad, finished: true, failed: true}, "unreadable"},
		{fileRow{stage: driver.StageAnalyze, finished: true, errors: 1, warnings: 3}, "errors"},
		{fileRow{stage: driver.StageCacheHit, finished: true}, "cached"},
		{fileRow{stage: driver.StageAnalyze, finished: true}, "clean"},
	}
	for _, tt := range tests {
		if got := rowStatus(tt.row); got != tt.want {
			t.Errorf("rowStatus(%+v) = %q, want %q", tt.row, got, tt.want)
		}
	}
}

func TestLoadFailureRow(t *testing.T) {
	model := NewProgressModel("diag", []string{"gone.pine"}, nil).(*progressModel)
	model.Update(eventMsg(driver.Event{
		File: "gone.pine", Stage: driver.StageLoad, Status: driver.StatusError,
		Err: errors.New("permission denied"), Errors: 1,
	}))
	if got := rowStatus(model.rows[0]); got != "unreadable" {
		t.Fatalf("status %q", got)
	}
	if got := rowResult(model.rows[0]); got != "" {
		t.Fatalf("result %q, want empty", got)
	}
}

func TestVisibleRowsPrefersProblems(t *testing.T) {
	files := make([]string, maxVisibleRows+5)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.pine", i)
	}
	model := NewProgressModel("diag", files, nil).(*progressModel)
	for _, f := range files[:maxVisibleRows] {
		model.Update(eventMsg(driver.Event{File: f, Stage: driver.StageAnalyze, Status: driver.StatusDone}))
	}
	last := files[len(files)-1]
	model.Update(eventMsg(driver.Event{File: last, Stage: driver.StageAnalyze, Status: driver.StatusError, Errors: 1}))

	rows := model.visibleRows()
	if len(rows) != maxVisibleRows {
		t.Fatalf("visible rows = %d", len(rows))
	}
	if rows[0].path != last {
		t.Fatalf("first visible row %q, want %q", rows[0].path, last)
	}
	if view := model.View(); !strings.Contains(view, "... and 5 more") {
		t.Errorf("missing overflow line:\n%s", view)
	}
}

func TestCountsLabel(t *testing.T) {
	tests := []struct {
		errors, warnings int
		want             string
	}{
		{0, 0, ""},
		{1, 0, "1 error"},
		{0, 2, "2 warnings"},
		{3, 1, "3 errors, 1 warning"},
	}
	for _, tt := range tests {
		if got := countsLabel(tt.errors, tt.warnings); got != tt.want {
			t.Errorf("countsLabel(%d, %d) = %q, want %q", tt.errors, tt.warnings, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("日本語", 4); got != "日..." && got != "..." {
		t.Errorf("truncate wide = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
}
