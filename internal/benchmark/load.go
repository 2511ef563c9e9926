package benchmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"reflect"

	bgerrors "benchgraph/internal/errors"
)

// wire types keep pointers so a missing field can be told apart from a zero value.
type wireResult struct {
	LibraryName *string  `json:"libraryName"`
	ResultType  *string  `json:"resultType"`
	ResultSpeed *float64 `json:"resultSpeed"`
	Color       *string  `json:"color"`
}

type wireTestCase struct {
	TestName *string            `json:"testName"`
	Results  *[]json.RawMessage `json:"results"`
}

// Load reads and validates the report at path.
func Load(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		// *fs.PathError repeats the path
		var pe *fs.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return nil, bgerrors.Input("open input", path, err)
	}
	defer f.Close()

	report, err := Decode(f)
	if err != nil {
		var e *bgerrors.Error
		if errors.As(err, &e) && e.Path == "" {
			e.Path = path
		}
		return nil, err
	}
	return report, nil
}

// Decode parses a report from r. Syntax problems are input errors; well-formed
// JSON of the wrong shape is a data shape error. Elements are decoded one by one
// so every shape error names its tests[i].results[j] location.
func Decode(r io.Reader) (Report, error) {
	dec := json.NewDecoder(r)

	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			return nil, typeError("report", typeErr)
		case errors.Is(err, io.EOF):
			return nil, bgerrors.Input("decode input", "", errors.New("empty document"))
		default:
			return nil, bgerrors.Input("decode input", "", err)
		}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, bgerrors.Input("decode input", "", errors.New("unexpected data after report"))
	}
	if raw == nil {
		return nil, bgerrors.DataShape("report", "expected an array of test cases, got null")
	}

	report := make(Report, 0, len(raw))
	for i, msg := range raw {
		tc, err := convertTestCase(fmt.Sprintf("tests[%d]", i), msg)
		if err != nil {
			return nil, err
		}
		report = append(report, tc)
	}
	return report, nil
}

// unmarshalAt decodes one already well-formed element; only type errors remain.
func unmarshalAt(loc string, msg json.RawMessage, v any) error {
	if err := json.Unmarshal(msg, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return typeError(loc, typeErr)
		}
		return bgerrors.DataShape(loc, "%v", err)
	}
	return nil
}

func typeError(loc string, e *json.UnmarshalTypeError) error {
	if e.Field != "" {
		return bgerrors.DataShape(loc, "field %q: expected %s, got JSON %s", e.Field, jsonKind(e.Type), e.Value)
	}
	return bgerrors.DataShape(loc, "expected %s, got JSON %s", jsonKind(e.Type), e.Value)
}

// jsonKind names the JSON value a Go type decodes from.
func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Pointer:
		return jsonKind(t.Elem())
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.String:
		return "string"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "number"
	case reflect.Bool:
		return "bool"
	}
	return t.String()
}

func convertTestCase(loc string, msg json.RawMessage) (TestCase, error) {
	var wt wireTestCase
	if err := unmarshalAt(loc, msg, &wt); err != nil {
		return TestCase{}, err
	}
	if wt.TestName == nil {
		return TestCase{}, bgerrors.DataShape(loc, "missing field %q", "testName")
	}
	if wt.Results == nil {
		return TestCase{}, bgerrors.DataShape(loc, "missing field %q", "results")
	}

	tc := TestCase{
		TestName: *wt.TestName,
		Results:  make([]Result, 0, len(*wt.Results)),
	}
	for j, rm := range *wt.Results {
		rloc := fmt.Sprintf("%s.results[%d]", loc, j)
		var wr wireResult
		if err := unmarshalAt(rloc, rm, &wr); err != nil {
			return TestCase{}, err
		}
		res, err := convertResult(rloc, wr)
		if err != nil {
			return TestCase{}, err
		}
		tc.Results = append(tc.Results, res)
	}
	return tc, nil
}

func convertResult(loc string, wr wireResult) (Result, error) {
	switch {
	case wr.LibraryName == nil:
		return Result{}, bgerrors.DataShape(loc, "missing field %q", "libraryName")
	case wr.ResultType == nil:
		return Result{}, bgerrors.DataShape(loc, "missing field %q", "resultType")
	case wr.ResultSpeed == nil:
		return Result{}, bgerrors.DataShape(loc, "missing field %q", "resultSpeed")
	case wr.Color == nil:
		return Result{}, bgerrors.DataShape(loc, "missing field %q", "color")
	}

	if *wr.LibraryName == "" {
		return Result{}, bgerrors.DataShape(loc, "empty libraryName")
	}
	rt := ResultType(*wr.ResultType)
	if !rt.Valid() {
		return Result{}, bgerrors.DataShape(loc, "resultType must be %q or %q, got %q", Read, Write, *wr.ResultType)
	}
	speed := *wr.ResultSpeed
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < 0 {
		return Result{}, bgerrors.DataShape(loc, "resultSpeed must be a non-negative number, got %v", speed)
	}

	return Result{
		LibraryName: *wr.LibraryName,
		ResultType:  rt,
		ResultSpeed: speed,
		Color:       *wr.Color,
	}, nil
}
