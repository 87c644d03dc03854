package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasgraph"
	"github.com/erraggy/oasgraph/cmd/oasgraph/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasgraph v%s\n", oasgraph.Version())
	case "help", "-h", "--help":
		printUsage()
	case "translate":
		if err := commands.HandleTranslate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := commands.HandleServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("oasgraph - translate OpenAPI descriptions into GraphQL schemas")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  oasgraph <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  translate   Translate documents and print a schema summary")
	fmt.Println("  serve       Translate documents and serve a GraphQL endpoint")
	fmt.Println("  version     Print version information")
	fmt.Println("  help        Print this help")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  oasgraph translate -f api.yaml")
	fmt.Println("  oasgraph translate -f api.yaml -f admin.yaml --format json")
	fmt.Println("  oasgraph serve -f api.yaml --addr :8080")
}
