package report

import (
	"fmt"
	"io"
	"strings"
)

// SimpleWriter outputs a plain text summary for the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose adds the crawl limits and the coordinate extent.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the detailed sections.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to output.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements Writer.
func (w *SimpleWriter) Write(s *Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, s)
	w.writeCrawl(&sb, s)
	w.writeValues(&sb, s)
	if w.verbose {
		w.writeDetails(&sb, s)
	}
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, s *Summary) {
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("                  HOMEHEAT CRAWL SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Place:      %s\n", s.Place)
	fmt.Fprintf(sb, "Run:        %s\n", s.RunID)
	if !s.CreatedAt.IsZero() {
		fmt.Fprintf(sb, "Created:    %s\n", s.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCrawl(sb *strings.Builder, s *Summary) {
	section(sb, "CRAWL")

	fmt.Fprintf(sb, "  %s.\n\n", s.ReasonMessage)
	fmt.Fprintf(sb, "  Records:        %s\n", w.count(s.Records))
	fmt.Fprintf(sb, "  Seeds:          %s\n", w.count(s.SeedCount))
	fmt.Fprintf(sb, "  Iterations:     %s\n", w.count(s.Iterations))
	fmt.Fprintf(sb, "  Expanded:       %s\n", w.count(s.Expanded))
	fmt.Fprintf(sb, "  Edges:          %s (%s to admitted, %s to rejected)\n",
		w.count(s.Edges), w.count(s.AdmittedEdges()), w.count(s.RejectedEdges))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeValues(sb *strings.Builder, s *Summary) {
	section(sb, "VALUATIONS")

	if s.Records == 0 {
		sb.WriteString("  No records\n\n")
		return
	}

	fmt.Fprintf(sb, "  Min:     %s\n", w.currency(s.Values.Min))
	fmt.Fprintf(sb, "  Median:  %s\n", w.currency(s.Values.Median))
	fmt.Fprintf(sb, "  Mean:    %s\n", w.currency(s.Values.Mean))
	fmt.Fprintf(sb, "  Max:     %s\n", w.currency(s.Values.Max))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeDetails(sb *strings.Builder, s *Summary) {
	section(sb, "DETAILS")

	fmt.Fprintf(sb, "  Bounds:         %s\n", s.Bounds)
	fmt.Fprintf(sb, "  Size target:    %s\n", w.count(s.MaxSize))
	fmt.Fprintf(sb, "  Iteration cap:  %s\n", iterationCap(s.MaxIterations))
	if s.Records > 0 {
		fmt.Fprintf(sb, "  Extent:         %s\n", s.Extent)
	}
	sb.WriteString("\n")
}
