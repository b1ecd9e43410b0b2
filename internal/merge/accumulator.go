package merge

import (
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/junitmerge/internal/report"
)

// timePrecision is the number of decimals each time addend is rounded to.
const timePrecision = 6

// Accumulator holds the running totals and suite text of one merge.
// It is not safe for concurrent use.
type Accumulator struct {
	Time     float64
	Tests    int
	Failures int
	body     strings.Builder
}

// AddTotals adds one block's attributes. The time is rounded to six
// decimals before it is added.
func (a *Accumulator) AddTotals(time float64, tests, failures int) {
	a.Time += RoundTime(time)
	a.Tests += tests
	a.Failures += failures
}

// AppendSuite appends the serialized suite block to the body.
func (a *Accumulator) AppendSuite(n *report.Node) {
	a.body.WriteString(n.String())
}

// Body returns the concatenated suite text.
func (a *Accumulator) Body() string {
	return a.body.String()
}

// Empty reports whether no suite text has been collected.
func (a *Accumulator) Empty() bool {
	return a.body.Len() == 0
}

// RoundTime rounds seconds to six decimals the way printing them with six
// decimals would.
func RoundTime(t float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(t, 'f', timePrecision, 64), 64)
	if err != nil {
		return t
	}
	return r
}
