// Package profile collects an execution histogram of optvm opcodes.
package profile

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/ezrec/optvm/isa"
	"github.com/ezrec/optvm/translate"
)

var f = translate.From

var (
	ErrEmpty = errors.New(f("profile empty"))
)

// Profile counts executed instructions, by opcode.
type Profile struct {
	Executed [isa.OPCODE_COUNT]uint64
}

// Record counts one execution of op.
func (p *Profile) Record(op isa.Opcode) {
	if op.Valid() {
		p.Executed[op]++
	}
}

// Count returns the executions of op.
func (p *Profile) Count(op isa.Opcode) uint64 {
	if !op.Valid() {
		return 0
	}
	return p.Executed[op]
}

// Total returns the executions of all opcodes.
func (p *Profile) Total() (total uint64) {
	for _, count := range p.Executed {
		total += count
	}
	return
}

// Reset clears all counts.
func (p *Profile) Reset() {
	clear(p.Executed[:])
}

// Counts iterates over the executed opcodes, in encoding order.
// Opcodes that never executed are skipped.
func (p *Profile) Counts() iter.Seq2[isa.Opcode, uint64] {
	return func(yield func(op isa.Opcode, count uint64) bool) {
		for n, count := range p.Executed {
			if count == 0 {
				continue
			}
			if !yield(isa.Opcode(n), count) {
				return
			}
		}
	}
}

// String returns the histogram as text, most frequent opcode first.
func (p *Profile) String() string {
	type entry struct {
		op    isa.Opcode
		count uint64
	}

	var entries []entry
	for op, count := range p.Counts() {
		entries = append(entries, entry{op, count})
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		switch {
		case a.count > b.count:
			return -1
		case a.count < b.count:
			return 1
		}
		return 0
	})

	var sb strings.Builder
	total := p.Total()
	for _, e := range entries {
		fmt.Fprintf(&sb, "%-5s %10d %6.2f%%\n", e.op, e.count, 100*float64(e.count)/float64(total))
	}

	return sb.String()
}

// Chart renders the histogram as a bar chart.
func (p *Profile) Chart() (plt *plot.Plot, err error) {
	var values plotter.Values
	var names []string
	for op, count := range p.Counts() {
		values = append(values, float64(count))
		names = append(names, op.String())
	}

	if len(values) == 0 {
		err = ErrEmpty
		return
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)

	plt = plot.New()
	plt.Title.Text = f("Opcode profile, %v instructions", p.Total())
	plt.Y.Label.Text = f("executions")
	plt.Add(bars)
	plt.NominalX(names...)

	return
}

// Plot saves the histogram bar chart to path.
// The image format is chosen by the file extension.
func (p *Profile) Plot(path string) (err error) {
	plt, err := p.Chart()
	if err != nil {
		return
	}

	err = plt.Save(8*vg.Inch, 4*vg.Inch, path)

	return
}
