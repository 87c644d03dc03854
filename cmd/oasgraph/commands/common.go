// Package commands provides CLI command handlers for oasgraph.
package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgraph/preprocess"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// LoadDocuments loads every given OpenAPI file.
func LoadDocuments(files []string) ([]*openapi3.T, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files; pass at least one -f flag")
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	docs := make([]*openapi3.T, 0, len(files))
	for _, file := range files {
		doc, err := loader.LoadFromFile(file)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", file, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// NewLogger builds the diagnostics logger for CLI runs. Verbose enables
// debug output; diagnostics always go to stderr so stdout stays structured.
func NewLogger(verbose bool) preprocess.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return preprocess.NewSlogAdapter(slog.New(handler))
}

// FileList collects repeated -f flags.
type FileList []string

// String implements flag.Value.
func (f *FileList) String() string {
	return fmt.Sprint(*f)
}

// Set implements flag.Value.
func (f *FileList) Set(value string) error {
	*f = append(*f, value)
	return nil
}
