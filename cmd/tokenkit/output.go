package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/tokenkit/cost"
)

var errNoInput = errors.New("provide --text, --file or pipe text on stdin")

// input holds the --text/--file flags shared by the text commands.
type input struct {
	text string
	file string
}

func (in *input) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.text, "text", "t", "", "text to process")
	cmd.Flags().StringVarP(&in.file, "file", "f", "", `file to process ("-" for stdin)`)
}

// read returns the text from --text, --file or stdin, in that order.
// Stdin is only read when it is not a terminal.
func (in *input) read(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("text") {
		return in.text, nil
	}
	if in.file != "" && in.file != "-" {
		data, err := os.ReadFile(in.file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", in.file, err)
		}
		return string(data), nil
	}
	return readStdin(cmd, in.file == "-")
}

func readStdin(cmd *cobra.Command, explicit bool) (string, error) {
	r := cmd.InOrStdin()
	if f, ok := r.(*os.File); ok && !explicit {
		if st, err := f.Stat(); err == nil && st.Mode()&os.ModeCharDevice != 0 {
			return "", errNoInput
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// field is one line of text output.
type field struct {
	key   string
	value any
}

// printer renders command results as indented JSON or as "key: value" lines.
type printer struct {
	w    io.Writer
	json bool

	key  lipgloss.Style
	dim  lipgloss.Style
	ok   lipgloss.Style
	warn lipgloss.Style
	crit lipgloss.Style
}

func newPrinter(w io.Writer, format string) *printer {
	// Styles degrade to plain text when w is not a terminal.
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:    w,
		json: format == "json",
		key:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		dim:  r.NewStyle().Foreground(lipgloss.Color("241")),
		ok:   r.NewStyle().Foreground(lipgloss.Color("42")),
		warn: r.NewStyle().Foreground(lipgloss.Color("214")),
		crit: r.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
	}
}

// print writes v as JSON, or fields as text lines. Slice values are listed
// one item per line, numbered from 1.
func (p *printer) print(v any, fields []field) error {
	if p.json {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}

	for _, f := range fields {
		items, ok := f.value.([]string)
		if !ok {
			if _, err := fmt.Fprintf(p.w, "%s: %v\n", p.key.Render(f.key), f.value); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(p.w, "%s:\n", p.key.Render(f.key)); err != nil {
			return err
		}
		for i, item := range items {
			if _, err := fmt.Fprintf(p.w, "  %s %s\n", p.dim.Render(fmt.Sprintf("%d:", i+1)), item); err != nil {
				return err
			}
		}
	}
	return nil
}

// level renders a cost level in its traffic-light color.
func (p *printer) level(l cost.Level) string {
	switch l {
	case cost.LevelCritical:
		return p.crit.Render(l.String())
	case cost.LevelWarning:
		return p.warn.Render(l.String())
	default:
		return p.ok.Render(l.String())
	}
}
