package labels

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/foodlens-ai/foodlens/internal/apperr"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExpectedCount is the number of output classes the model was trained on.
const ExpectedCount = 100

// Registry holds the ordered class name list. Position equals the model's
// output index. Loaded once in main and read-only afterwards.
type Registry struct {
	names []string
}

// Load reads a JSON array of class name strings from path.
// A count other than ExpectedCount is a warning, not a failure; index range
// is still guarded at prediction time.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NewNotFoundError(path)
		}
		return nil, apperr.NewUnexpectedError(err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, apperr.NewParseError(path, err)
	}

	if len(names) != ExpectedCount {
		log.Warn().Msgf("Class names count mismatch: expected %d, got %d", ExpectedCount, len(names))
	}
	return &Registry{names: names}, nil
}

// Count returns the number of loaded class names.
func (r *Registry) Count() int {
	return len(r.names)
}

// CountMismatch reports whether the loaded list deviates from ExpectedCount.
func (r *Registry) CountMismatch() bool {
	return len(r.names) != ExpectedCount
}

// Name returns the raw class name for index, guarding the range.
func (r *Registry) Name(index int) (string, error) {
	if index < 0 || index >= len(r.names) {
		return "", apperr.NewIndexRangeError(index, len(r.names))
	}
	return r.names[index], nil
}

// Pretty formats a raw class name for display: "apple_pie" becomes "Apple Pie".
// A Caser is not safe for concurrent use, so one is built per call.
func Pretty(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}
