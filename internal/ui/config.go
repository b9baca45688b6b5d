package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/config"
	"github.com/javiermolinar/horario/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  horario config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Backend.BaseURL = promptValue(reader, out, "Backend URL", cfg.Backend.BaseURL)
	cfg.Backend.Timeout = promptValue(reader, out, "Backend timeout", cfg.Backend.Timeout)
	cfg.Grid.Days = promptDays(reader, out, "Days (1=Mon..7=Sun, comma-separated)", cfg.Grid.Days)
	cfg.Grid.FirstHour = promptInt(reader, out, "First hour", cfg.Grid.FirstHour)
	cfg.Grid.LastHour = promptInt(reader, out, "Last hour", cfg.Grid.LastHour)
	cfg.Cache.DBPath = promptValue(reader, out, "Cache database path", cfg.Cache.DBPath)
	cfg.LLM.Provider = promptValue(reader, out, "LLM provider (ollama, lmstudio)", cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, out, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, out, "LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[backend]")
	fmt.Fprintf(out, "  base_url   = %s\n", cfg.Backend.BaseURL)
	fmt.Fprintf(out, "  timeout    = %s\n", cfg.Backend.Timeout)
	fmt.Fprintln(out, "\n[grid]")
	fmt.Fprintf(out, "  days       = %s\n", joinInts(cfg.Grid.Days))
	fmt.Fprintf(out, "  first_hour = %d\n", cfg.Grid.FirstHour)
	fmt.Fprintf(out, "  last_hour  = %d\n", cfg.Grid.LastHour)
	fmt.Fprintln(out, "\n[cache]")
	fmt.Fprintf(out, "  enabled    = %t\n", cfg.Cache.Enabled)
	fmt.Fprintf(out, "  db_path    = %s\n", cfg.Cache.DBPath)
	fmt.Fprintln(out, "\n[llm]")
	fmt.Fprintf(out, "  provider   = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(out, "  model      = %s\n", cfg.LLM.Model)
	fmt.Fprintf(out, "  base_url   = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme      = %s\n", cfg.UI.Theme)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level      = %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  file       = %s\n", cfg.Log.File)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptDays(reader *bufio.Reader, out io.Writer, label string, current []int) []int {
	for {
		value := promptValue(reader, out, label, joinInts(current))
		days, err := parseInts(value)
		if err == nil && len(days) > 0 {
			return days
		}
		fmt.Fprintf(out, "  Invalid day list %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func parseInts(s string) ([]int, error) {
	var values []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		values = append(values, n)
	}
	return values, nil
}
