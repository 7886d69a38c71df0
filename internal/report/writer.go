package report

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Writer outputs a Summary.
type Writer interface {
	// Write renders s and returns the number of bytes written.
	Write(s *Summary) (int, error)
}

// baseWriter holds what every writer needs.
type baseWriter struct {
	output  io.Writer
	printer *message.Printer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{
		output:  output,
		printer: message.NewPrinter(language.AmericanEnglish),
	}
}

// currency formats v as whole US dollars with thousands separators.
func (w baseWriter) currency(v float64) string {
	return w.printer.Sprintf("$%.0f", v)
}

// count formats n with thousands separators.
func (w baseWriter) count(n int) string {
	return w.printer.Sprintf("%d", n)
}

// iterationCap renders 0 as "none".
func iterationCap(n int) string {
	if n == 0 {
		return "none"
	}
	return message.NewPrinter(language.AmericanEnglish).Sprintf("%d", n)
}
