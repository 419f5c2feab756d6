// Package main provides the CLI entrypoint for nutristat.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/verte-zerg/nutristat/internal/age"
	"github.com/verte-zerg/nutristat/internal/batch"
	"github.com/verte-zerg/nutristat/internal/classify"
	"github.com/verte-zerg/nutristat/internal/config"
	"github.com/verte-zerg/nutristat/internal/model"
	"github.com/verte-zerg/nutristat/internal/reference"
	"github.com/verte-zerg/nutristat/internal/report"
	"github.com/verte-zerg/nutristat/internal/tui"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

var logger = zap.NewNop()

var (
	verbose    bool
	tablesPath string
	fileCfg    config.FileConfig

	rootGender string

	classifyWeight float64
	classifyHeight float64
	classifyMUAC   float64
	classifyAge    string
	classifyGender string
	classifyFormat string

	batchIn     string
	batchOut    string
	batchFormat string
	batchGender string

	tablesIndicator string
	tablesGender    string
	tablesMonths    int
	tablesHeight    float64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "nutristat",
		Short:             "WHO growth standard nutritional status calculator",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
		RunE: runCalculatorCmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&tablesPath, "tables", "", "custom reference table file (.toml, .yaml, .yml)")
	rootCmd.Flags().StringVar(&rootGender, "gender", string(model.Male), "initial gender in the calculator")

	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newTablesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// setup loads the config file and builds the logger. The config command
// skips the file so a broken config can still be opened for editing.
func setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() != "config" {
		cfg, err := config.LoadConfig(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg = cfg
	}
	applyStringConfig(cmd, "tables", &tablesPath, fileCfg.Tables.Path)

	zapCfg := zap.NewProductionConfig()
	if fileCfg.Log.Level != nil {
		level, err := zap.ParseAtomicLevel(*fileCfg.Log.Level)
		if err != nil {
			return fmt.Errorf("invalid log level in config: %w", err)
		}
		zapCfg.Level = level
	}
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	built, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	return nil
}

func loadTables() (*reference.Tables, error) {
	path := strings.TrimSpace(tablesPath)
	if path == "" {
		logger.Debug("using embedded reference tables")
		return reference.Default(), nil
	}
	tables, err := reference.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded reference tables", zap.String("path", path))
	return tables, nil
}

func resolveGender(cmd *cobra.Command, target *string) (model.Gender, error) {
	applyStringConfig(cmd, "gender", target, fileCfg.Defaults.Gender)
	gender, err := model.ParseGender(*target)
	if err != nil {
		return "", fmt.Errorf("invalid --gender value: %w", err)
	}
	return gender, nil
}

func runCalculatorCmd(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the calculator needs a terminal; use `nutristat classify` for scripts")
	}
	gender, err := resolveGender(cmd, &rootGender)
	if err != nil {
		return err
	}
	tables, err := loadTables()
	if err != nil {
		return err
	}

	calculator := tui.NewModel(tables, gender, nil)
	program := tea.NewProgram(calculator, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one child",
		Args:  cobra.NoArgs,
		RunE:  runClassifyCmd,
	}
	cmd.Flags().Float64Var(&classifyWeight, "weight", 0, "weight in kg")
	cmd.Flags().Float64Var(&classifyHeight, "height", 0, "length or height in cm")
	cmd.Flags().Float64Var(&classifyMUAC, "muac", 0, "mid-upper arm circumference in cm")
	cmd.Flags().StringVar(&classifyAge, "age", "", `age as free text, e.g. "2 years 3 months"`)
	cmd.Flags().StringVar(&classifyGender, "gender", string(model.Male), "Male or Female")
	cmd.Flags().StringVar(&classifyFormat, "format", formatTable, "output format: table or json")
	return cmd
}

func runClassifyCmd(cmd *cobra.Command, _ []string) error {
	applyStringConfig(cmd, "format", &classifyFormat, fileCfg.Defaults.Format)
	format, err := validateFormat(classifyFormat, formatTable, formatJSON)
	if err != nil {
		return err
	}
	gender, err := resolveGender(cmd, &classifyGender)
	if err != nil {
		return err
	}
	tables, err := loadTables()
	if err != nil {
		return err
	}

	in := model.Input{Age: classifyAge, Gender: gender}
	for _, flag := range []struct {
		name   string
		value  float64
		target **float64
	}{
		{"weight", classifyWeight, &in.Weight},
		{"height", classifyHeight, &in.Height},
		{"muac", classifyMUAC, &in.MUAC},
	} {
		if *flag.target, err = measureFlag(cmd, flag.name, flag.value); err != nil {
			return err
		}
	}
	status := classify.Classify(in, tables)
	ageSpec := age.Parse(in.Age)
	logger.Debug("classified input",
		zap.Float64("age_months", ageSpec.Months),
		zap.String("gender", string(gender)),
		zap.String("wfa", string(status.WFA)),
		zap.String("lhfa", string(status.LHFA)),
		zap.String("wfh", string(status.WFH)),
		zap.String("muac_status", string(status.MUACStatus)),
	)

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return report.RenderJSON(out, status)
	}
	return report.RenderStatus(out, ageSpec, status)
}

// measureFlag returns nil for flags the user did not pass.
func measureFlag(cmd *cobra.Command, name string, value float64) (*float64, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	if !model.Finite(value) {
		return nil, fmt.Errorf("--%s must be a finite number", name)
	}
	return model.Float(value), nil
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify a roster CSV",
		Args:  cobra.NoArgs,
		RunE:  runBatchCmd,
	}
	cmd.Flags().StringVar(&batchIn, "in", "", "roster CSV path (- for stdin)")
	cmd.Flags().StringVar(&batchOut, "out", "", "output path (default stdout)")
	cmd.Flags().StringVar(&batchFormat, "format", formatCSV, "output format: csv or json")
	cmd.Flags().StringVar(&batchGender, "gender", string(model.Male), "gender for rows without a gender column value")
	return cmd
}

func runBatchCmd(cmd *cobra.Command, _ []string) error {
	if batchIn == "" {
		return fmt.Errorf("--in is required")
	}
	if !cmd.Flags().Changed("format") && strings.EqualFold(filepath.Ext(batchOut), ".json") {
		batchFormat = formatJSON
	}
	format, err := validateFormat(batchFormat, formatCSV, formatJSON)
	if err != nil {
		return err
	}
	gender, err := resolveGender(cmd, &batchGender)
	if err != nil {
		return err
	}
	tables, err := loadTables()
	if err != nil {
		return err
	}

	roster, err := readRoster(cmd.InOrStdin(), batchIn)
	if err != nil {
		return err
	}
	results, summary := batch.Run(roster, tables, gender, logger)

	out := cmd.OutOrStdout()
	if batchOut != "" {
		file, err := os.Create(batchOut)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				logger.Warn("failed to close output", zap.Error(cerr))
			}
		}()
		out = file
	}
	if format == formatJSON {
		err = batch.WriteJSON(out, results)
	} else {
		err = batch.WriteCSV(out, roster, results)
	}
	if err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	logger.Info("batch complete",
		zap.Int("rows", summary.Rows),
		zap.Int("warnings", summary.Warnings),
		zap.Int("severe", summary.Severe),
		zap.Int("moderate", summary.Moderate),
	)
	return nil
}

func readRoster(stdin io.Reader, path string) (*batch.Roster, error) {
	if path == "-" {
		return batch.Read(stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.Warn("failed to close roster", zap.Error(cerr))
		}
	}()
	return batch.Read(file)
}

func newTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Show reference cutoffs",
		Args:  cobra.NoArgs,
		RunE:  runTablesCmd,
	}
	cmd.Flags().StringVar(&tablesIndicator, "indicator", reference.IndicatorWFA, "wfa, lhfa or wfh")
	cmd.Flags().StringVar(&tablesGender, "gender", string(model.Male), "Male or Female")
	cmd.Flags().IntVar(&tablesMonths, "months", 0, "show only the row for this age in months")
	cmd.Flags().Float64Var(&tablesHeight, "height", 0, "show only the row the classifier uses for this height")
	return cmd
}

func runTablesCmd(cmd *cobra.Command, _ []string) error {
	gender, err := resolveGender(cmd, &tablesGender)
	if err != nil {
		return err
	}
	tables, err := loadTables()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	indicator := strings.ToLower(strings.TrimSpace(tablesIndicator))

	if indicator == reference.IndicatorWFH {
		if cmd.Flags().Changed("months") {
			return fmt.Errorf("--months does not apply to wfh; use --height")
		}
		table := tables.WFH(gender)
		rows := table.Rows()
		if cmd.Flags().Changed("height") {
			rows = nil
			inWindow := tablesHeight >= classify.WFHMinHeight && tablesHeight <= classify.WFHMaxHeight
			if row, ok := classify.HeightRow(table, tablesHeight); ok && inWindow {
				rows = []reference.HeightRow{row}
			}
		}
		return report.RenderHeightTable(out, rows)
	}

	if cmd.Flags().Changed("height") {
		return fmt.Errorf("--height only applies to wfh; use --months")
	}
	table, err := tables.AgeIndexed(indicator, gender)
	if err != nil {
		return fmt.Errorf("invalid --indicator value: %w", err)
	}
	rows := table.Rows()
	if cmd.Flags().Changed("months") {
		rows = nil
		if row, ok := table.Row(tablesMonths); ok {
			rows = []reference.AgeRow{row}
		}
	}
	return report.RenderAgeTable(out, indicator, rows)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		logErrf("Created %s\n", path)
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func validateFormat(value string, allowed ...string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if normalized == a {
			return normalized, nil
		}
	}
	return "", fmt.Errorf("invalid --format value %q (expected %s)", value, strings.Join(allowed, " or "))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# nutristat configuration
# Uncomment a value to enable it. CLI flags override config values.

[defaults]
# gender = %q        # Gender used when --gender is omitted (Male or Female)
# format = %q       # classify output: table or json

[tables]
# path = ""             # Custom reference tables (.toml, .yaml or .yml)

[log]
# level = "info"        # debug, info, warn or error
`, string(model.Male), formatTable)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
