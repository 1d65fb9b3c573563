// Package main provides the vlines CLI for viewing files through the
// view-line projection: soft wrapping, hidden ranges, and syntax-aware
// token styling.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/viewlines"
	"go.jacobcolvin.com/viewlines/highlight"
	"go.jacobcolvin.com/viewlines/textmodel"
	"go.jacobcolvin.com/viewlines/wrap"
)

// config holds the settings a YAML config file may set. Every field except
// FullWidthChars also has a CLI flag.
type config struct {
	TabSize        int    `yaml:"tabSize"`
	WrapColumn     int    `yaml:"wrapColumn"`
	Indent         string `yaml:"indent"`
	Language       string `yaml:"language"`
	LineNumbers    bool   `yaml:"lineNumbers"`
	FullWidthChars int    `yaml:"fullWidthChars"`
}

func defaultConfig() config {
	return config{
		TabSize:        4,
		WrapColumn:     0,
		Indent:         "none",
		FullWidthChars: 2,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // User-provided file paths are intentional.
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

func parseIndent(s string) (wrap.Indent, error) {
	switch s {
	case "", "none":
		return wrap.IndentNone, nil
	case "same":
		return wrap.IndentSame, nil
	case "deeper":
		return wrap.IndentDeeper, nil
	default:
		return wrap.IndentNone, fmt.Errorf("unknown indent policy %q", s)
	}
}

// wrapColumnOrTerminal resolves a zero wrap column to the terminal width.
func wrapColumnOrTerminal(column, gutter int) int {
	if column != 0 {
		return column
	}

	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= gutter {
		return 80
	}

	return width - gutter
}

func main() {
	var (
		cfgPath     string
		hide        string
		interactive bool
	)

	cfg := defaultConfig()

	cmd := &cobra.Command{
		Use:   "vlines <file>",
		Short: "View a file through soft wrapping and hidden line ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				loaded, err := loadConfig(cfgPath)
				if err != nil {
					return err
				}

				// Explicit flags override the config file.
				if !cmd.Flags().Changed("tab-size") {
					cfg.TabSize = loaded.TabSize
				}
				if !cmd.Flags().Changed("wrap") {
					cfg.WrapColumn = loaded.WrapColumn
				}
				if !cmd.Flags().Changed("indent") {
					cfg.Indent = loaded.Indent
				}
				if !cmd.Flags().Changed("language") {
					cfg.Language = loaded.Language
				}
				if !cmd.Flags().Changed("line-numbers") {
					cfg.LineNumbers = loaded.LineNumbers
				}

				cfg.FullWidthChars = loaded.FullWidthChars
			}

			content, err := os.ReadFile(args[0]) //nolint:gosec // User-provided file paths are intentional.
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			indent, err := parseIndent(cfg.Indent)
			if err != nil {
				return err
			}

			ranges, err := parseHiddenRanges(hide)
			if err != nil {
				return err
			}

			buffer := textmodel.NewBuffer(string(content),
				textmodel.WithTokenizer(highlight.New(cfg.Language)),
			)

			gutter := 0
			if cfg.LineNumbers {
				gutter = len(fmt.Sprint(buffer.LineCount())) + 3
			}

			c := viewlines.New(buffer, wrap.NewMonospaceFactory(),
				viewlines.WithTabSize(cfg.TabSize),
				viewlines.WithWrappingColumn(wrapColumnOrTerminal(cfg.WrapColumn, gutter)),
				viewlines.WithColumnsForFullWidthChar(cfg.FullWidthChars),
				viewlines.WithWrappingIndent(indent),
			)
			defer c.Dispose()

			if len(ranges) > 0 {
				c.SetHiddenAreas(ranges, false)
			}

			if interactive {
				m := newModel(c, gutter, cfg.LineNumbers)

				p := tea.NewProgram(m)

				_, err = p.Run()
				if err != nil {
					return fmt.Errorf("run program: %w", err)
				}

				return nil
			}

			opts := []viewlines.PrinterOption{}
			if cfg.LineNumbers {
				opts = append(opts, viewlines.WithLineNumbers())
			}

			out, err := viewlines.NewPrinter(opts...).Print(c)
			if err != nil {
				return fmt.Errorf("print: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)

			return nil
		},
	}

	cmd.Flags().IntVarP(&cfg.TabSize, "tab-size", "t", cfg.TabSize, "tab-stop width in columns")
	cmd.Flags().IntVarP(&cfg.WrapColumn, "wrap", "w", cfg.WrapColumn, "wrapping column (0 = terminal width)")
	cmd.Flags().StringVarP(&cfg.Indent, "indent", "i", cfg.Indent, "continuation indent policy: none|same|deeper")
	cmd.Flags().StringVarP(&cfg.Language, "language", "l", cfg.Language, "language for token styling (empty = detect)")
	cmd.Flags().BoolVarP(&cfg.LineNumbers, "line-numbers", "n", cfg.LineNumbers, "show input line numbers")
	cmd.Flags().StringVar(&hide, "hide", "", "hidden input line ranges, e.g. 2-5,9")
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "YAML config file")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "open an interactive viewport")

	err := fang.Execute(context.Background(), cmd)
	if err != nil {
		os.Exit(1)
	}
}
