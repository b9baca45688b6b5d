package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/llm"
	"github.com/javiermolinar/horario/internal/present"
)

func (a *App) insightCmd() *cobra.Command {
	var opts viewOptions
	var model string
	var asJSON bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Ask an LLM to review the week",
		Long: `Send the filtered week to the configured LLM and print its review:
load per day, long blocks, blocks without a teacher or room, and
pinned blocks.

With --json the model is asked for a list of findings instead.`,
		Example: `  horario insight
  horario insight --group 1A
  horario insight --group 1A --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			state, err := a.loadState(opts)
			if err != nil {
				return err
			}
			entries := state.Filtered()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No blocks to review for this selection.")
				return nil
			}

			if model == "" {
				model = a.config.LLM.Model
			}
			client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}
			evaluator := llm.NewEvaluator(client)

			w := cmd.OutOrStdout()
			ctx := context.Background()
			if asJSON {
				review, err := evaluator.Findings(ctx, entries, state.Window())
				if err != nil {
					return fmt.Errorf("reviewing week: %w", err)
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(review)
			}

			text, err := evaluator.EvaluateWeek(ctx, entries, state.Window())
			if err != nil {
				return fmt.Errorf("reviewing week: %w", err)
			}

			fmt.Fprintf(w, "\n  %s\n", formatHeader("WEEK"))
			fmt.Fprintln(w, strings.Repeat("─", 74))
			printStats(w, llm.Stats(entries, state.Window()))
			fmt.Fprintf(w, "\n  %s\n", formatHeader("INSIGHT"))
			fmt.Fprintln(w, strings.Repeat("─", 74))
			PrintInsightWrapped(w, text, 72)
			fmt.Fprintln(w)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&model, "model", "", "LLM model to use (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print findings as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// printStats prints the hours per day and the block counters.
func printStats(w io.Writer, stats llm.WeekStats) {
	days := make([]int, 0, len(stats.HoursPerDay))
	for d := range stats.HoursPerDay {
		days = append(days, d)
	}
	sort.Ints(days)

	for _, d := range days {
		fmt.Fprintf(w, "  %-10s %s\n", present.DayName(d), LoadBar(stats.HoursPerDay[d], 8, 16))
	}

	fmt.Fprintf(w, "  %s\n", formatStats(fmt.Sprintf("Blocks: %d | Long (%dh+): %d | Pinned: %d",
		stats.Blocks, llm.LongBlockHours, stats.LongBlocks, stats.Pinned)))
	if stats.NoTeacher > 0 || stats.NoRoom > 0 {
		fmt.Fprintf(w, "  %s\n", formatUnassigned(fmt.Sprintf("Without teacher: %d | Without room: %d",
			stats.NoTeacher, stats.NoRoom)))
	}
	if stats.Outside > 0 {
		fmt.Fprintf(w, "  %s\n", formatWarning(fmt.Sprintf("%d block(s) outside the visible hours", stats.Outside)))
	}
}

// LoadBar draws hours against a full day of capacity hours.
func LoadBar(hours, capacity, width int) string {
	if capacity <= 0 || width <= 0 {
		return ""
	}
	filled := min(hours*width/capacity, width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s", formatStats(bar), formatMuted(fmt.Sprintf("%dh", hours)))
}
