package stats

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// editMarker tags the state header lines of the university towns list.
const editMarker = "[edit]"

// maxTownLine bounds the length of a single line of the towns list.
const maxTownLine = 16 << 20

var (
	annotatedCitationRegex = regexp.MustCompile(`\s\(.*\)\[.*\]`)
	annotationRegex        = regexp.MustCompile(`\s*\(.*`)
	prefixRegex            = regexp.MustCompile(`.*:`)
	bracketRegex           = regexp.MustCompile(`\[.*?\]`)
	openBracketRegex       = regexp.MustCompile(`\[[^\]]*$`)

	strayBrackets = strings.NewReplacer("(", "", ")", "", "[", "", "]", "")
)

type lineKind int

const (
	lineTown lineKind = iota
	lineHeader
)

type townLine struct {
	Kind lineKind
	Text string
	No   int
}

// cleanTownLine strips "(...)[n]" annotations, any remaining "(..."
// annotation and everything up to the last colon.
func cleanTownLine(s string) string {
	s = annotatedCitationRegex.ReplaceAllString(s, "")
	s = annotationRegex.ReplaceAllString(s, "")
	s = prefixRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func classifyTownLine(raw string, no int) townLine {
	s := cleanTownLine(raw)
	kind := lineTown
	if strings.Contains(s, editMarker) {
		kind = lineHeader
	}
	s = bracketRegex.ReplaceAllString(s, "")
	s = openBracketRegex.ReplaceAllString(s, "")
	return townLine{
		Kind: kind,
		Text: strings.TrimSpace(strayBrackets.Replace(s)),
		No:   no,
	}
}

type townsAcc struct {
	State   string
	Started bool
	Towns   []RegionKey
}

func (acc townsAcc) step(l townLine) (townsAcc, error) {
	switch l.Kind {
	case lineHeader:
		acc.State = l.Text
		acc.Started = true
	case lineTown:
		if l.Text == "" {
			return acc, nil
		}
		if !acc.Started {
			return acc, fmt.Errorf("%w: line %d '%s'", ErrTownWithoutState, l.No, l.Text)
		}
		acc.Towns = append(acc.Towns, RegionKey{State: acc.State, RegionName: l.Text})
	}
	return acc, nil
}

// ParseUniversityTowns parses the list of university towns. Lines
// containing "[edit]" name a state; every other line is a town in the
// most recent state. Towns keep their source order, duplicates included.
func ParseUniversityTowns(r io.Reader) ([]RegionKey, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTownLine)
	var acc townsAcc
	no := 0

	for scanner.Scan() {
		no++
		raw := strings.TrimPrefix(scanner.Text(), "\ufeff")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		var err error
		acc, err = acc.step(classifyTownLine(raw, no))
		if err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return acc.Towns, nil
}

func LoadUniversityTowns(path string) ([]RegionKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	towns, err := ParseUniversityTowns(f)
	if err != nil {
		return nil, fmt.Errorf("university towns '%s': %w", path, err)
	}

	slog.Info("Loaded university towns", "path", path, "towns", len(towns))
	return towns, nil
}

// FormatUniversityTowns writes towns back in the list format accepted by
// ParseUniversityTowns, starting a new state header whenever the state
// changes.
func FormatUniversityTowns(w io.Writer, towns []RegionKey) error {
	bw := bufio.NewWriter(w)
	state, started := "", false

	for _, t := range towns {
		if !started || t.State != state {
			if _, err := fmt.Fprintf(bw, "%s%s\n", t.State, editMarker); err != nil {
				return err
			}
			state, started = t.State, true
		}
		if _, err := fmt.Fprintln(bw, t.RegionName); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TownSet turns a list of towns into a lookup set.
func TownSet(towns []RegionKey) map[RegionKey]bool {
	set := make(map[RegionKey]bool, len(towns))
	for _, t := range towns {
		set[t] = true
	}
	return set
}
