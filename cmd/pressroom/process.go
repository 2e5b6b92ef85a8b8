package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/pressroom"
)

// Run executes the process command.
func (c *ProcessCmd) Run(deps *Dependencies) error {
	content, err := readInput(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressroom.ErrorMessage(err))
		return err
	}

	result := deps.Processor.Process(content)

	if c.JSON {
		return writeJSON(deps.Stdout, result)
	}
	writeLine(deps.Stdout, result.ProcessedContent)
	return nil
}

// Run executes the toc command.
func (c *TocCmd) Run(deps *Dependencies) error {
	content, err := readInput(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressroom.ErrorMessage(err))
		return err
	}

	toc := deps.Processor.Process(content).TOCItems

	if c.JSON {
		return writeJSON(deps.Stdout, toc)
	}
	if len(toc) == 0 {
		fmt.Fprintln(deps.Stderr, "No headings found.")
		return nil
	}
	fmt.Fprint(deps.Stdout, FormatTOC(toc))
	return nil
}

// FormatTOC renders entries as a nested Markdown list. Indentation is
// relative to the shallowest heading level present.
func FormatTOC(toc []pressroom.HeadingEntry) string {
	top := 6
	for _, h := range toc {
		top = min(top, h.Level)
	}

	var b strings.Builder
	for _, h := range toc {
		b.WriteString(strings.Repeat("  ", h.Level-top))
		fmt.Fprintf(&b, "- %s (#%s)\n", h.Title, h.ID)
	}
	return b.String()
}

// Run executes the readtime command.
func (c *ReadtimeCmd) Run(deps *Dependencies) error {
	content, err := readInput(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pressroom.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, pressroom.FormatReadingTime(deps.Estimator.Estimate(content)))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeLine(w io.Writer, s string) {
	fmt.Fprint(w, s)
	if !strings.HasSuffix(s, "\n") {
		fmt.Fprintln(w)
	}
}
