package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-runewidth"

	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelint/internal/history"
	"git.home.luguber.info/inful/sitelint/internal/report"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int    `short:"n" help:"Number of runs to list" default:"10"`
	JSON  bool   `help:"Print runs as JSON"`
	ID    string `arg:"" optional:"" name:"run-id" help:"Show the findings of one run"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return errors.ConfigError("history.path is not configured").Build()
	}

	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if h.ID != "" {
		run, err := store.Get(ctx, h.ID)
		if err != nil {
			return err
		}
		return showRun(os.Stdout, run)
	}

	runs, err := store.Latest(ctx, h.Limit)
	if err != nil {
		return err
	}
	if h.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	return listRuns(os.Stdout, runs)
}

var historyColumns = []string{"RUN", "STARTED", "REVISION", "VERDICT", "ERRORS", "WARNINGS", "A11Y"}

func listRuns(w io.Writer, runs []history.Run) error {
	rows := [][]string{historyColumns}
	for _, run := range runs {
		verdict := "FAIL"
		if run.Passed {
			verdict = "PASS"
		}
		score := "-"
		if run.A11yScore != nil {
			score = strconv.Itoa(*run.A11yScore)
		}
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Revision,
			verdict,
			strconv.Itoa(run.Errors),
			strconv.Itoa(run.Warnings),
			score,
		})
	}

	widths := make([]int, len(historyColumns))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		line := ""
		for i, cell := range row {
			if i == len(row)-1 {
				line += cell
				continue
			}
			line += runewidth.FillRight(cell, widths[i]) + "  "
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func showRun(w io.Writer, run history.Run) error {
	findings, err := run.Findings()
	if err != nil {
		return errors.WrapError(err, errors.CategoryStorage, "stored run has unreadable findings").
			WithContext("run_id", run.ID).
			Build()
	}
	rep := &report.Report{
		Findings:  findings,
		RunID:     run.ID,
		Revision:  run.Revision,
		StartedAt: run.StartedAt,
		Duration:  run.Duration,
		Documents: run.Documents,
		A11yScore: run.A11yScore,
	}
	return report.NewTextFormatter(false).Format(w, rep)
}
