package stats

import (
	"fmt"
	"regexp"
	"strconv"
)

// Quarter is one of the four three month periods of a calendar year,
// labeled `YYYYqN` (for example 2008q3).
type Quarter struct {
	Year int
	Q    int
}

var (
	quarterRegex = regexp.MustCompile(`^(\d{4})q([1-4])$`)
	monthRegex   = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)
)

func ParseQuarter(s string) (Quarter, error) {
	m := quarterRegex.FindStringSubmatch(s)
	if m == nil {
		return Quarter{}, fmt.Errorf("invalid quarter label '%s'", s)
	}
	year, _ := strconv.Atoi(m[1])
	q, _ := strconv.Atoi(m[2])
	return Quarter{Year: year, Q: q}, nil
}

// IsQuarterLabel reports whether s looks like `YYYYqN`.
func IsQuarterLabel(s string) bool {
	return quarterRegex.MatchString(s)
}

// QuarterOfMonth maps a `YYYY-MM` month column to its quarter.
func QuarterOfMonth(month string) (Quarter, error) {
	m := monthRegex.FindStringSubmatch(month)
	if m == nil {
		return Quarter{}, fmt.Errorf("%w: '%s' is not a YYYY-MM month", ErrMalformedColumn, month)
	}
	year, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return Quarter{Year: year, Q: (mm-1)/3 + 1}, nil
}

func (q Quarter) String() string {
	return fmt.Sprintf("%dq%d", q.Year, q.Q)
}

func (q Quarter) index() int {
	return q.Year*4 + q.Q - 1
}

// Prev returns the quarter immediately before q.
func (q Quarter) Prev() Quarter {
	i := q.index() - 1
	return Quarter{Year: i / 4, Q: i%4 + 1}
}

func (q Quarter) Before(o Quarter) bool {
	return q.index() < o.index()
}

func (q Quarter) IsZero() bool {
	return q.Year == 0 && q.Q == 0
}

// MarshalText lets quarters be used as JSON object keys.
func (q Quarter) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *Quarter) UnmarshalText(b []byte) error {
	p, err := ParseQuarter(string(b))
	if err != nil {
		return err
	}
	*q = p
	return nil
}
