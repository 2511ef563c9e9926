package benchmark

// ResultType is the category of a measurement.
type ResultType string

const (
	Read  ResultType = "Read"
	Write ResultType = "Write"
)

// ResultTypes lists the categories in the order they are charted.
var ResultTypes = []ResultType{Read, Write}

// Valid reports whether t is a known result type.
func (t ResultType) Valid() bool {
	return t == Read || t == Write
}

// Result is one library's measurement for one result type.
type Result struct {
	LibraryName string     `json:"libraryName"`
	ResultType  ResultType `json:"resultType"`
	ResultSpeed float64    `json:"resultSpeed"` // MB/s
	Color       string     `json:"color"`
}

// TestCase is a named benchmark scenario.
type TestCase struct {
	TestName string   `json:"testName"`
	Results  []Result `json:"results"`
}

// Report is the full input document.
type Report []TestCase
