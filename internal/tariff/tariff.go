// Package tariff loads the minute-of-day tariff table and resolves timestamps
// against it. The table is loaded once at startup and is immutable afterward.
package tariff

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

const minutesPerDay = 24 * 60

// Rule is a half-open [StartMin, EndMin) minute-of-day range with a fee.
type Rule struct {
	StartMin  int
	EndMin    int
	AmountSek int64
}

// Table is the ordered, validated tariff rule set for one toll zone.
type Table struct {
	rules []Rule
	loc   *time.Location
}

type tariffFile struct {
	Timezone  string      `json:"timezone"`
	Semantics string      `json:"semantics"`
	TollFees  []tariffRow `json:"tollFees"`
}

type tariffRow struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	AmountSek int64  `json:"amountSek"`
	StartMin  *int   `json:"startMin"`
	EndMin    *int   `json:"endMin"`
}

// Load reads and validates the tariff file at path. loc is the timezone used
// to resolve timestamps to a minute of day. Rules are sorted by start minute
// and must not overlap; any violation is a fatal configuration error.
func Load(path string, loc *time.Location) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tariff file: %w", err)
	}

	var file tariffFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tariff file %s: %w", path, err)
	}
	if len(file.TollFees) == 0 {
		return nil, fmt.Errorf("tariff file %s contains no rules", path)
	}

	rules := make([]Rule, 0, len(file.TollFees))
	for i, row := range file.TollFees {
		rule, err := row.toRule()
		if err != nil {
			return nil, fmt.Errorf("tariff rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].StartMin < rules[j].StartMin })

	if err := validate(rules); err != nil {
		return nil, err
	}

	return &Table{rules: rules, loc: loc}, nil
}

// NewTable builds a table from already-parsed rules. Used by tests.
func NewTable(rules []Rule, loc *time.Location) (*Table, error) {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartMin < sorted[j].StartMin })
	if err := validate(sorted); err != nil {
		return nil, err
	}
	return &Table{rules: sorted, loc: loc}, nil
}

func (r tariffRow) toRule() (Rule, error) {
	rule := Rule{AmountSek: r.AmountSek}

	var err error
	if r.StartMin != nil {
		rule.StartMin = *r.StartMin
	} else if rule.StartMin, err = parseMinutes(r.Start); err != nil {
		return Rule{}, err
	}
	if r.EndMin != nil {
		rule.EndMin = *r.EndMin
	} else if rule.EndMin, err = parseMinutes(r.End); err != nil {
		return Rule{}, err
	}

	return rule, nil
}

// parseMinutes converts an "HH:MM" string into a minute of day. "24:00" is
// accepted as the exclusive end of day.
func parseMinutes(hhmm string) (int, error) {
	if hhmm == "24:00" {
		return minutesPerDay, nil
	}
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", hhmm)
	}
	return h*60 + m, nil
}

func validate(sorted []Rule) error {
	for i, rule := range sorted {
		if rule.StartMin < 0 || rule.EndMin > minutesPerDay || rule.StartMin >= rule.EndMin {
			return fmt.Errorf("tariff rule [%d, %d) is out of bounds", rule.StartMin, rule.EndMin)
		}
		if rule.AmountSek < 0 {
			return fmt.Errorf("tariff rule [%d, %d) has negative amount %d", rule.StartMin, rule.EndMin, rule.AmountSek)
		}
		if i > 0 && rule.StartMin < sorted[i-1].EndMin {
			return fmt.Errorf("tariff rules [%d, %d) and [%d, %d) overlap",
				sorted[i-1].StartMin, sorted[i-1].EndMin, rule.StartMin, rule.EndMin)
		}
	}
	return nil
}

// Resolve maps a timestamp to its tariff fee. The timestamp is converted to
// the table's timezone first. The second return value is false when the
// timestamp falls outside every tariffed period.
func (t *Table) Resolve(at time.Time) (int64, bool) {
	local := at.In(t.loc)
	minuteOfDay := local.Hour()*60 + local.Minute()

	// Index of the first rule starting after minuteOfDay; the candidate rule
	// is the one before it.
	i := sort.Search(len(t.rules), func(i int) bool { return t.rules[i].StartMin > minuteOfDay })
	if i == 0 {
		return 0, false
	}

	rule := t.rules[i-1]
	if minuteOfDay >= rule.EndMin {
		return 0, false
	}
	return rule.AmountSek, true
}

// Rules returns a copy of the ordered rule set.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}
