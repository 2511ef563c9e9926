package benchmark

import (
	"sort"

	"benchgraph/internal/telemetry"
)

// Entry is one row of a Table.
type Entry struct {
	Library string
	Value   float64
}

// Table maps library names to values, ordered by the order libraries were first
// seen in a test case.
type Table struct {
	entries []Entry
	index   map[string]int
}

func newTable(libraries []string) Table {
	t := Table{
		entries: make([]Entry, len(libraries)),
		index:   make(map[string]int, len(libraries)),
	}
	for i, lib := range libraries {
		t.entries[i] = Entry{Library: lib}
		t.index[lib] = i
	}
	return t
}

func (t Table) set(library string, v float64) {
	if i, ok := t.index[library]; ok {
		t.entries[i].Value = v
	}
}

// Get returns the value for library, or 0 if the library is unknown.
func (t Table) Get(library string) float64 {
	if i, ok := t.index[library]; ok {
		return t.entries[i].Value
	}
	return 0
}

// Entries returns a copy of the rows in discovery order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Values returns the values in discovery order.
func (t Table) Values() []float64 {
	out := make([]float64, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Value
	}
	return out
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.entries)
}

// Series is the aggregate of one result type within a test case.
type Series struct {
	Type    ResultType
	Speed   Table
	Speedup Table
	records map[string]Result
}

// Record returns the result a library contributed to this series.
func (s Series) Record(library string) (Result, bool) {
	r, ok := s.records[library]
	return r, ok
}

// Summary is everything the charts need for one test case.
type Summary struct {
	TestName string
	// Libraries in the order they first appear in the results.
	Libraries []string
	// Ranking holds libraries ordered by descending speed across all results.
	Ranking []string
	Read    Series
	Write   Series
}

// Series returns the series for t.
func (s Summary) Series(t ResultType) Series {
	if t == Write {
		return s.Write
	}
	return s.Read
}

// Summarize aggregates a test case into per result type speed and speedup tables.
func Summarize(tc TestCase) Summary {
	libraries := discoveryOrder(tc.Results)
	return Summary{
		TestName:  tc.TestName,
		Libraries: libraries,
		Ranking:   Ranking(tc.Results),
		Read:      summarizeType(tc, libraries, Read),
		Write:     summarizeType(tc, libraries, Write),
	}
}

func summarizeType(tc TestCase, libraries []string, rt ResultType) Series {
	s := Series{
		Type:    rt,
		Speed:   newTable(libraries),
		Speedup: newTable(libraries),
		records: make(map[string]Result),
	}

	selected := sortedByType(tc.Results, rt)
	if len(selected) == 0 {
		return s
	}

	speedups := CumulativeSpeedups(selected)
	for i, r := range selected {
		if _, dup := s.records[r.LibraryName]; dup {
			telemetry.LogWarn("duplicate result, keeping the faster one",
				"test", tc.TestName, "library", r.LibraryName, "type", string(rt))
		}
		// Later entries are faster, so the fastest duplicate wins.
		s.records[r.LibraryName] = r
		s.Speed.set(r.LibraryName, r.ResultSpeed)
		s.Speedup.set(r.LibraryName, speedups[i])
	}
	return s
}

// CumulativeSpeedups expresses each speed of an ascending slice as a percentage
// of the first (slowest). A zero baseline yields all zeros.
func CumulativeSpeedups(ascending []Result) []float64 {
	out := make([]float64, len(ascending))
	if len(ascending) == 0 {
		return out
	}
	slowest := ascending[0].ResultSpeed
	if slowest == 0 {
		return out
	}
	out[0] = 100
	for i := 1; i < len(ascending); i++ {
		out[i] = ((ascending[i].ResultSpeed/slowest)-1)*100 + 100
	}
	return out
}

// Ranking returns unique library names ordered by descending speed. Ties keep
// input order.
func Ranking(results []Result) []string {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ResultSpeed > sorted[j].ResultSpeed
	})
	return discoveryOrder(sorted)
}

func sortedByType(results []Result, rt ResultType) []Result {
	var selected []Result
	for _, r := range results {
		if r.ResultType == rt {
			selected = append(selected, r)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].ResultSpeed < selected[j].ResultSpeed
	})
	return selected
}

func discoveryOrder(results []Result) []string {
	seen := make(map[string]bool, len(results))
	var libraries []string
	for _, r := range results {
		if seen[r.LibraryName] {
			continue
		}
		seen[r.LibraryName] = true
		libraries = append(libraries, r.LibraryName)
	}
	return libraries
}
