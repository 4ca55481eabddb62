package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rgehrsitz/runway/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(analysis *domain.Analysis) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.Analysis) ([]byte, error)
}

func (ff FormatterFunc) Format(a *domain.Analysis) ([]byte, error) { return ff.F(a) }
func (ff FormatterFunc) Name() string                             { return ff.ID }

// BaseFileName is the stem of every exported report file.
const BaseFileName = "retirement-analysis"

// FileExtension returns the file extension used when writing f to disk.
func FileExtension(f Formatter) string {
	if f.Name() == "console" {
		return "txt"
	}
	return f.Name()
}

// DefaultFileName returns the export file name for f, e.g. retirement-analysis.csv
func DefaultFileName(f Formatter) string {
	return BaseFileName + "." + FileExtension(f)
}

// WriteFormatted runs a formatter and writes the output into dir under its
// default file name. It returns the path written.
func WriteFormatted(f Formatter, analysis *domain.Analysis, dir string) (string, error) {
	data, err := f.Format(analysis)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(dir, DefaultFileName(f))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVExporter{},
	HTMLFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter, resolving aliases.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"table":       "console",
	"text":        "console",
	"txt":         "console",
	"verbose":     "console",
	"spreadsheet": "csv",
	"report":      "html",
	"html-report": "html",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
