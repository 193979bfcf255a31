package stats

// Recession is a period that starts with two consecutive quarters of GDP
// decline and ends with two consecutive quarters of growth. Bottom is the
// quarter with the lowest GDP between Start and End inclusive.
type Recession struct {
	Start  Quarter
	Bottom Quarter
	End    Quarter
}

// DetectRecession returns the first recession in the series, or
// ErrNoRecession when there is no two quarter decline followed by a two
// quarter recovery.
func DetectRecession(s GDPSeries) (Recession, error) {
	r, _, found := findRecession(s, 0)
	if !found {
		return Recession{}, ErrNoRecession
	}
	return r, nil
}

// DetectRecessions returns every recession in the series, resuming the
// scan at the end of each one.
func DetectRecessions(s GDPSeries) []Recession {
	var out []Recession
	from := 0
	for {
		r, end, found := findRecession(s, from)
		if !found {
			return out
		}
		out = append(out, r)
		from = end
	}
}

// findRecession scans from index `from` for the first start (s[i] > s[i+1]
// > s[i+2]) and the first recovery after it (s[j] < s[j+1] < s[j+2]). It
// returns the index of the end quarter.
func findRecession(s GDPSeries, from int) (Recession, int, bool) {
	for i := from; i+2 < len(s); i++ {
		if !(s[i+1].Value < s[i].Value && s[i+2].Value < s[i+1].Value) {
			continue
		}

		// Later starts only search a suffix of this window, so a missing
		// recovery here means there is none at all.
		for j := i; j+2 < len(s); j++ {
			if !(s[j+1].Value > s[j].Value && s[j+2].Value > s[j+1].Value) {
				continue
			}

			start, end := i+1, j+2
			bottom := start
			for k := start; k <= end; k++ {
				if s[k].Value < s[bottom].Value {
					bottom = k
				}
			}
			return Recession{
				Start:  s[start].Quarter,
				Bottom: s[bottom].Quarter,
				End:    s[end].Quarter,
			}, end, true
		}
		return Recession{}, 0, false
	}
	return Recession{}, 0, false
}
