package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/homeheat/internal/model"
)

// MarkdownWriter outputs the summary as GitHub flavoured Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(s *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, s)
	w.writeCrawl(md, s)
	w.writeValues(md, s)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *Summary) {
	md.H1("homeheat crawl summary")
	md.PlainText("")

	rows := [][]string{
		{"Place", s.Place},
		{"Run", "`" + s.RunID + "`"},
	}
	if !s.CreatedAt.IsZero() {
		rows = append(rows, []string{"Created", s.CreatedAt.Format("2006-01-02 15:04:05 MST")})
	}
	rows = append(rows,
		[]string{"Bounds", "`" + s.Bounds.String() + "`"},
		[]string{"Size target", w.count(s.MaxSize)},
		[]string{"Iteration cap", iterationCap(s.MaxIterations)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeCrawl(md *markdown.Markdown, s *Summary) {
	md.H2("Crawl")
	md.PlainText("")

	switch s.Reason {
	case model.ReasonSizeTarget:
		md.Tip(s.ReasonMessage + ".")
	case model.ReasonIterationCap:
		md.Warningf("%s. The frontier was not exhausted; raise --max-iterations for a fuller graph.", s.ReasonMessage)
	default:
		md.Note(s.ReasonMessage + ".")
	}
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Records", w.count(s.Records)},
			{"Seeds", w.count(s.SeedCount)},
			{"Iterations", w.count(s.Iterations)},
			{"Expanded records", w.count(s.Expanded)},
			{"Edges", w.count(s.Edges)},
			{"Edges to rejected records", w.count(s.RejectedEdges)},
		},
	})
	md.PlainText("")

	if s.Edges > 0 {
		w.writeEdgeChart(md, s)
	}
}

// writeEdgeChart draws the share of edges that led to admitted records.
func (w *MarkdownWriter) writeEdgeChart(md *markdown.Markdown, s *Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Comparables edges"),
		piechart.WithShowData(true),
	)

	if n := s.AdmittedEdges(); n > 0 {
		chart.LabelAndIntValue("Admitted", uint64(n))
	}
	if s.RejectedEdges > 0 {
		chart.LabelAndIntValue("Rejected", uint64(s.RejectedEdges))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeValues(md *markdown.Markdown, s *Summary) {
	md.H2("Valuations")
	md.PlainText("")

	if s.Records == 0 {
		md.PlainText("No records.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Min", w.currency(s.Values.Min)},
			{"Median", w.currency(s.Values.Median)},
			{"Mean", w.currency(s.Values.Mean)},
			{"Max", w.currency(s.Values.Max)},
		},
	})
	md.PlainText("")

	md.H3("Extent")
	md.PlainText("")
	md.BulletList(
		"Latitude "+formatCoord(s.Extent.MinLat)+" to "+formatCoord(s.Extent.MaxLat),
		"Longitude "+formatCoord(s.Extent.MinLon)+" to "+formatCoord(s.Extent.MaxLon),
	)
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [homeheat](https://github.com/nao1215/homeheat)*")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
