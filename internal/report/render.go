package report

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the human-readable report.
func (r *Report) Render(w io.Writer) error {
	p := &printer{w: w}
	passed := r.Passed()

	p.line("=== healthdata report ===")
	p.printf("File:       %s\n", r.Path)
	p.printf("SHA-256:    %s\n", r.SHA256)
	p.printf("Size:       %d bytes\n", r.Size)
	p.printf("Shape:      %d rows x %d columns\n", r.Rows, r.Columns)
	p.line("")

	p.section(CheckMissing, passed[CheckMissing])
	for _, m := range r.Missing {
		if m.Count > 0 {
			p.printf("  %-16s %6d\n", m.Column, m.Count)
		}
	}
	p.printf("  total            %6d\n\n", r.TotalMissing())

	p.section(CheckDuplicates, passed[CheckDuplicates])
	p.printf("  duplicate rows   %6d\n\n", r.Duplicates)

	p.section(CheckRanges, passed[CheckRanges])
	for _, rr := range r.Ranges {
		p.printf("  %-16s %6d  (allowed %g..%g)\n", rr.Column, rr.Violations, rr.Range.Min, rr.Range.Max)
	}
	p.line("")

	p.section(CheckCategorical, passed[CheckCategorical])
	for _, c := range r.Categorical {
		p.printf("  %-16s %6d  (allowed %s)\n", c.Column, c.Violations, strings.Join(c.Allowed, ", "))
		if len(c.Unexpected) > 0 {
			p.printf("    unexpected: %s\n", strings.Join(c.Unexpected, ", "))
		}
	}
	p.line("")

	p.line("Scorecard:")
	for _, name := range []string{CheckMissing, CheckDuplicates, CheckRanges, CheckCategorical} {
		p.printf("  %-24s %s\n", name, status(passed[name]))
	}
	p.printf("\nOverall: %s (%d of 4 checks failed)\n", r.Score(), r.Failed())
	return p.err
}

func status(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

// printer keeps the first write error so Render can check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(s string) {
	p.printf("%s\n", s)
}

func (p *printer) section(name string, ok bool) {
	p.printf("%s: %s\n", name, status(ok))
}
