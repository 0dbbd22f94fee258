package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"memegen/internal/domain"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var userID string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generation outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := ctx.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			if history == nil {
				return errNoHistory
			}
			defer history.Close()

			events, err := history.Recent(cmd.Context(), userID, limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, events)
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No generations recorded")
				return nil
			}
			headers, rows := historyRows(events)
			if isTerminal(out) {
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{
					alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft,
				}))
				return nil
			}
			return writeTSV(out, headers, rows)
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "Only show this session")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of rows")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw events as JSON")
	return cmd
}

func historyRows(events []domain.GenerationEvent) ([]string, [][]string) {
	headers := []string{"FINISHED", "USER", "MODE", "RESULT", "STATUS", "POLLS", "DURATION", "DETAIL"}
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		result := "ok"
		detail := ev.ArtifactRef
		if !ev.OK {
			result = ev.Category
			detail = ev.Message
		}
		rows = append(rows, []string{
			ev.FinishedAt.Local().Format(time.DateTime),
			ev.SessionID,
			string(ev.Mode),
			result,
			strconv.Itoa(ev.HTTPStatus),
			strconv.Itoa(ev.Attempts),
			ev.Duration().Round(100 * time.Millisecond).String(),
			truncate(detail, 60),
		})
	}
	return headers, rows
}

func writeTSV(w io.Writer, headers []string, rows [][]string) error {
	if _, err := fmt.Fprintln(w, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
