package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	log "github.com/sirupsen/logrus"

	"jobview-engine/internal/domain"
)

// ExpectedFilename is the only export name the loader accepts.
const ExpectedFilename = "upwork_jobs.json"

var (
	ErrWrongFile = errors.New("please upload the correct file: " + ExpectedFilename)
	ErrMalformed = errors.New("error parsing JSON file, ensure it is properly formatted")
)

var utf8BOM = []byte("\xEF\xBB\xBF")

// rawJob mirrors one element of the export. encoding/json matches the
// capitalised keys case-insensitively.
type rawJob struct {
	Title  text `json:"Title"`
	Posted text `json:"Posted"`
	Type   text `json:"Type"`
	Level  text `json:"Level"`
	Skill  text `json:"Skill"`
	Detail text `json:"Detail"`
}

func (r rawJob) job() domain.Job {
	return domain.NewJob(string(r.Title), string(r.Posted), string(r.Type), string(r.Level), string(r.Skill), string(r.Detail))
}

// text accepts a string, null, or a scalar literal. Numbers and true keep
// their JSON text; zero and false count as absent, like an empty string.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	case '{', '[':
		return fmt.Errorf("expected string, got %s", kind(b[0]))
	default:
		if falsy(b) {
			*t = ""
			return nil
		}
		*t = text(b)
		return nil
	}
}

func falsy(b []byte) bool {
	if bytes.Equal(b, []byte("false")) {
		return true
	}
	f, err := strconv.ParseFloat(string(b), 64)
	return err == nil && f == 0
}

func kind(c byte) string {
	if c == '{' {
		return "object"
	}
	return "array"
}

// CheckFilename wants the bare name, exactly. Multipart uploads already
// carry only the base name.
func CheckFilename(name string) error {
	if name != ExpectedFilename {
		return fmt.Errorf("%w (got %q)", ErrWrongFile, name)
	}
	return nil
}

// Parse decodes a whole export. It either returns every record, in input
// order, or an error wrapping ErrMalformed.
func Parse(r io.Reader) ([]domain.Job, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	b = bytes.TrimPrefix(b, utf8BOM)

	var elems []json.RawMessage
	if err := json.Unmarshal(b, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if elems == nil {
		// top-level null
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformed)
	}

	jobs := make([]domain.Job, 0, len(elems))
	for i, el := range elems {
		el = bytes.TrimSpace(el)
		if len(el) == 0 || el[0] != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformed, i)
		}
		var rj rawJob
		if err := json.Unmarshal(el, &rj); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformed, i, err)
		}
		jobs = append(jobs, rj.job())
	}
	return jobs, nil
}

// Load checks the upload's name before reading any of it.
func Load(name string, r io.Reader) ([]domain.Job, error) {
	if err := CheckFilename(name); err != nil {
		return nil, err
	}
	jobs, err := Parse(r)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"file": name, "jobs": len(jobs)}).Info("[ingest] export parsed")
	return jobs, nil
}
