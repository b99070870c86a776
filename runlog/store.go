// Package runlog persists assembled run records as JSON Lines, one record
// per training run, so runs can be compared across sessions by the
// reporting layer.
package runlog

import (
	"bufio"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/YuminosukeSato/svmlab/pkg/errors"
	"github.com/YuminosukeSato/svmlab/workflow"
)

// Store appends and reads run records at a fixed file path.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file. The file is created
// on first append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Append writes one record as a JSON line. Sentinel NaN and infinite
// values are stored as null, since JSON has no encoding for them.
func (s *Store) Append(record workflow.LogRecord) error {
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(err, "runlog: open for append")
	}
	defer file.Close()

	return AppendTo(file, record)
}

// AppendTo writes one record as a JSON line to a writer.
func AppendTo(w io.Writer, record workflow.LogRecord) error {
	encoder := json.NewEncoder(w)
	if err := encoder.Encode(sanitize(record)); err != nil {
		return errors.Wrap(err, "runlog: encode record")
	}
	return nil
}

// Load reads every record in the store. A missing file is an empty store,
// not an error.
func (s *Store) Load() ([]workflow.LogRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "runlog: open for load")
	}
	defer file.Close()

	return LoadFrom(file)
}

// LoadFrom reads JSON-line records from a reader until EOF.
func LoadFrom(r io.Reader) ([]workflow.LogRecord, error) {
	var records []workflow.LogRecord

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record workflow.LogRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, errors.Wrap(err, "runlog: decode record")
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "runlog: read")
	}
	return records, nil
}

// sanitize replaces non-finite numbers with nil so the record encodes as
// valid JSON. Values are copied; the input record is not modified.
func sanitize(record workflow.LogRecord) workflow.LogRecord {
	out := make(workflow.LogRecord, len(record))
	for key, value := range record {
		out[key] = sanitizeValue(value)
	}
	return out
}

func sanitizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case []float64:
		cleaned := make([]interface{}, len(v))
		for i, f := range v {
			cleaned[i] = sanitizeValue(f)
		}
		return cleaned
	case []interface{}:
		cleaned := make([]interface{}, len(v))
		for i, item := range v {
			cleaned[i] = sanitizeValue(item)
		}
		return cleaned
	case map[string]interface{}:
		cleaned := make(map[string]interface{}, len(v))
		for k, item := range v {
			cleaned[k] = sanitizeValue(item)
		}
		return cleaned
	default:
		return value
	}
}
