package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a catalog source file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// MaxCourseIDLength matches the width of the course id column.
const MaxCourseIDLength = 32

// ErrEmptySource is returned for a source that decodes to no course records.
var ErrEmptySource = errors.New("seed source contains no courses")

// CourseRecord is one entry of the catalog source.
type CourseRecord struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Cycle         int      `json:"cycle" yaml:"cycle"`
	Credits       int      `json:"credits" yaml:"credits"`
	IsMandatory   *bool    `json:"is_mandatory,omitempty" yaml:"is_mandatory,omitempty"`
	Prerequisites []string `json:"prerequisites" yaml:"prerequisites"`
}

// Mandatory reports the record's mandatory flag, defaulting to true when absent.
func (r CourseRecord) Mandatory() bool {
	return r.IsMandatory == nil || *r.IsMandatory
}

// validate returns a drop reason for records that cannot be stored, or "".
func (r CourseRecord) validate() string {
	switch {
	case strings.TrimSpace(r.ID) == "":
		return "empty id"
	case len(r.ID) > MaxCourseIDLength:
		return fmt.Sprintf("id longer than %d characters", MaxCourseIDLength)
	case r.Cycle <= 0:
		return "cycle must be positive"
	case r.Credits < 0:
		return "credits must not be negative"
	}
	return ""
}

// FormatFromPath picks the format from the file extension. Anything that is
// not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadSource reads and decodes the catalog source at path.
func LoadSource(path string) ([]CourseRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed source: %w", err)
	}
	defer f.Close()

	return ParseSource(f, FormatFromPath(path))
}

// ParseSource decodes a sequence of course records from r.
func ParseSource(r io.Reader, format Format) ([]CourseRecord, error) {
	var records []CourseRecord
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEmptySource
			}
			return nil, fmt.Errorf("failed to parse yaml seed source: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to parse json seed source: %w", err)
		}
	}
	if len(records) == 0 {
		return nil, ErrEmptySource
	}
	return records, nil
}
