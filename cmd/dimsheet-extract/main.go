package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dimsheet/dimsheet/internal/dimension"
	"github.com/dimsheet/dimsheet/internal/export"
	"github.com/dimsheet/dimsheet/internal/extract"
)

const defaultMaxFileSize = 100 * 1024 * 1024

var (
	outputFormat = flag.String("format", "text", "Output format: text, json, csv, xlsx")
	outputPath   = flag.String("o", "", "Output file (default: stdout for text/json, extracted_dimensions_<name>.<ext> beside the input for csv/xlsx)")
	tolerance    = flag.String("tolerance", dimension.DefaultTolerance, "Default tolerance applied when a callout carries none")
	pages        = flag.Bool("pages", true, "Include page references in the output")
	verbose      = flag.Bool("verbose", false, "Print extraction details to stderr")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: drawing PDF path required\n\n")
		printUsage()
		os.Exit(1)
	}

	pdfPath := flag.Arg(0)
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: file not found: %s\n", pdfPath)
		os.Exit(1)
	}

	svc := extract.NewService(defaultMaxFileSize, *tolerance)
	result, err := svc.ExtractFile(extract.ExtractFileRequest{Path: pdfPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting dimensions: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Drawing: %s (%d pages, %s content)\n",
			result.Drawing, result.Pages, result.ContentType)
		if result.Strategy != "" {
			fmt.Fprintf(os.Stderr, "Extraction strategy: %s\n", result.Strategy)
		}
		for _, warning := range result.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
		}
	}

	if err := output(result, pdfPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func output(result *extract.Result, pdfPath string) error {
	opts := export.Options{IncludePages: *pages}

	switch *outputFormat {
	case "text":
		return writeText(stdoutOr(*outputPath), result, opts)

	case "json":
		return writeJSON(stdoutOr(*outputPath), result)

	case "csv":
		f, err := createOutput(pdfPath, "csv")
		if err != nil {
			return err
		}
		defer f.Close()
		return export.WriteCSV(f, result.Dimensions, opts)

	case "xlsx":
		f, err := createOutput(pdfPath, "xlsx")
		if err != nil {
			return err
		}
		defer f.Close()
		return export.Write(f, result.Dimensions, opts)

	default:
		return fmt.Errorf("unsupported format: %s (use text, json, csv, or xlsx)", *outputFormat)
	}
}

// createOutput opens the output file, defaulting to the export name
// beside the input drawing
func createOutput(pdfPath, ext string) (*os.File, error) {
	path := *outputPath
	if path == "" {
		path = filepath.Join(filepath.Dir(pdfPath), export.Filename(pdfPath, ext))
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", path, err)
	}

	fmt.Fprintf(os.Stderr, "Writing %s\n", path)
	return f, nil
}

func stdoutOr(path string) *os.File {
	if path == "" {
		return os.Stdout
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create %s: %v\n", path, err)
		os.Exit(1)
	}
	return f
}

// writeText prints an aligned table plus the summary
func writeText(w *os.File, result *extract.Result, opts export.Options) error {
	headers := export.Headers(opts)
	rows := export.Rows(result.Dimensions, opts)

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)

	divider := make([]string, len(headers))
	for i := range divider {
		divider[i] = strings.Repeat("-", widths[i])
	}
	printRow(divider)

	for _, row := range rows {
		printRow(row)
	}

	fmt.Fprintf(w, "\n%d dimensions (%d critical, %d parameter types)\n",
		result.Summary.Total, result.Summary.CriticalCount, result.Summary.UniqueParameters)
	return nil
}

func writeJSON(w *os.File, result *extract.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printHelp() {
	fmt.Println("dimsheet-extract - Extract dimensional callouts from a 2D engineering drawing")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -format      Output format: text (default), json, csv, xlsx")
	fmt.Println("  -o           Output file path")
	fmt.Println("  -tolerance   Default tolerance when a callout carries none (default ±0.10)")
	fmt.Println("  -pages       Include page references (default true)")
	fmt.Println("  -verbose     Print extraction details to stderr")
	fmt.Println("  -help        Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  dimsheet-extract drawing.pdf")
	fmt.Println("  dimsheet-extract -format json drawing.pdf")
	fmt.Println("  dimsheet-extract -format xlsx -o inspection.xlsx drawing.pdf")
	fmt.Println("  dimsheet-extract -tolerance \"±0.05\" -verbose drawing.pdf")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  dimsheet-extract [OPTIONS] <drawing.pdf>")
}
