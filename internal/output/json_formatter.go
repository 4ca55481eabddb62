package output

import (
	json "github.com/goccy/go-json"

	"github.com/rgehrsitz/runway/internal/domain"
)

// JSONFormatter serializes the analysis as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(analysis *domain.Analysis) ([]byte, error) {
	return json.MarshalIndent(analysis, "", "  ")
}
