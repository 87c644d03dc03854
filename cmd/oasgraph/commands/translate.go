package commands

import (
	"flag"
	"fmt"
	"sort"

	"github.com/graphql-go/graphql"

	"github.com/erraggy/oasgraph/translator"
)

// FieldSummary describes one root field of the translated schema.
type FieldSummary struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Args        []string `json:"args,omitempty" yaml:"args,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// TranslateSummary is the structured output of the translate command.
type TranslateSummary struct {
	Queries   []FieldSummary `json:"queries" yaml:"queries"`
	Mutations []FieldSummary `json:"mutations,omitempty" yaml:"mutations,omitempty"`
}

// HandleTranslate implements the translate command: load the given OpenAPI
// documents, translate them, and print a summary of the resulting schema.
func HandleTranslate(args []string) error {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	var files FileList
	fs.Var(&files, "f", "OpenAPI document to translate (repeatable)")
	format := fs.String("format", FormatText, "Output format: text, json, or yaml")
	strict := fs.Bool("strict", false, "Fail when translation produces warnings")
	noViewers := fs.Bool("no-viewers", false, "Install authenticated operations as plain root fields")
	verbose := fs.Bool("verbose", false, "Enable debug diagnostics on stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := ValidateOutputFormat(*format); err != nil {
		return err
	}

	docs, err := LoadDocuments(files)
	if err != nil {
		return err
	}

	opts := []translator.Option{translator.WithLogger(NewLogger(*verbose))}
	if *strict {
		opts = append(opts, translator.WithStrictWarnings())
	}
	if *noViewers {
		opts = append(opts, translator.WithViewersDisabled())
	}

	schema, err := translator.Translate(docs, opts...)
	if err != nil {
		return err
	}

	summary := summarize(schema)
	if *format == FormatText {
		printSummary(summary)
		return nil
	}
	return OutputStructured(summary, *format)
}

func summarize(schema graphql.Schema) TranslateSummary {
	summary := TranslateSummary{
		Queries: summarizeFields(schema.QueryType()),
	}
	if schema.MutationType() != nil {
		summary.Mutations = summarizeFields(schema.MutationType())
	}
	return summary
}

func summarizeFields(obj *graphql.Object) []FieldSummary {
	fields := obj.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]FieldSummary, 0, len(names))
	for _, name := range names {
		fd := fields[name]
		args := make([]string, 0, len(fd.Args))
		for _, arg := range fd.Args {
			args = append(args, fmt.Sprintf("%s: %s", arg.Name(), arg.Type.String()))
		}
		sort.Strings(args)
		out = append(out, FieldSummary{
			Name:        name,
			Type:        fd.Type.String(),
			Args:        args,
			Description: fd.Description,
		})
	}
	return out
}

func printSummary(summary TranslateSummary) {
	fmt.Printf("Query fields (%d):\n", len(summary.Queries))
	for _, f := range summary.Queries {
		printField(f)
	}
	if len(summary.Mutations) > 0 {
		fmt.Printf("\nMutation fields (%d):\n", len(summary.Mutations))
		for _, f := range summary.Mutations {
			printField(f)
		}
	}
}

func printField(f FieldSummary) {
	fmt.Printf("  %s: %s\n", f.Name, f.Type)
	for _, arg := range f.Args {
		fmt.Printf("    arg %s\n", arg)
	}
}
