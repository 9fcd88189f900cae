package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Dteebaba/Survey-Agent/config"
	"github.com/Dteebaba/Survey-Agent/dataset"
	"github.com/Dteebaba/Survey-Agent/engine"
	"github.com/Dteebaba/Survey-Agent/export"
	"github.com/Dteebaba/Survey-Agent/plan"
	"github.com/Dteebaba/Survey-Agent/profile"
	"github.com/Dteebaba/Survey-Agent/server"
	"github.com/Dteebaba/Survey-Agent/translator"
)

// ============================================================================
// SURVEY AGENT CLI — Filtered spreadsheets from plain-language requests
// ============================================================================

const version = "0.1.0"

func main() {
	filePath := flag.String("file", "", "Path to CSV or XLSX data file")
	request := flag.String("request", "", "Natural language request to execute")
	planPath := flag.String("plan", "", "Path to a plan JSON file (skips the AI call)")
	profileOnly := flag.Bool("profile", false, "Print the dataset profile and exit")
	format := flag.String("format", "xlsx", "Output format: xlsx, csv, json")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	serve := flag.Bool("serve", false, "Run the web UI instead of a one-shot command")
	configPath := flag.String("config", "", "Directory containing config.yaml")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Survey Agent — filtered spreadsheets from plain-language requests

Usage:
  surveyagent --file data.csv --request "SDVOSB solicitations from February" --out results.xlsx
  surveyagent --file data.csv --plan plan.json --format csv
  surveyagent --file data.xlsx --profile
  surveyagent --serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  OPENAI_API_KEY    Required for --request and AI summaries
  SURVEY_*          Overrides for config.yaml values

Formats:
  xlsx   Multi-sheet workbook (default)
  csv    First output sheet as CSV
  json   Profile, plan, and sheets as JSON
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("surveyagent %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = key
	}

	if *serve {
		runServer(cfg)
		return
	}

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		fatalf("Failed to read file: %v", err)
	}

	ds, err := dataset.ParseFile(filepath.Base(*filePath), data)
	if err != nil {
		fatalf("Failed to parse file: %v", err)
	}
	prof := profile.Build(ds, profile.Options{SampleSize: cfg.SampleSize})
	log.Printf("📊 Loaded %s: %d rows, %d columns", filepath.Base(*filePath), ds.RowCount(), ds.ColumnCount())

	if *profileOnly {
		writeOutput(*outFile, func(f *os.File) error {
			fmt.Fprint(f, translator.DescribeProfile(prof))
			return nil
		})
		return
	}

	p, err := obtainPlan(cfg, *request, *planPath, prof)
	if err != nil {
		fatalf("%v", err)
	}

	vp, err := plan.Validate(p, prof)
	if err != nil {
		fatalf("Plan validation failed: %v", err)
	}
	if vp.Explanation != "" {
		log.Printf("📝 Plan: %s", vp.Explanation)
	}

	result, err := engine.Execute(vp, ds)
	if err != nil {
		fatalf("Execution failed: %v", err)
	}
	for _, warn := range result.Warnings {
		log.Printf("⚠️ %s: %s", warn.Sheet, warn.Message)
	}
	log.Printf("✅ %d sheets, %d rows total", len(result.Sheets), result.TotalRows())

	switch *format {
	case "xlsx":
		writeOutput(*outFile, func(f *os.File) error {
			return export.WriteXLSX(f, result)
		})
	case "csv":
		writeOutput(*outFile, func(f *os.File) error {
			return export.WriteCSV(f, result.Sheets[0].Data)
		})
	case "json":
		writeOutput(*outFile, func(f *os.File) error {
			return writeJSON(f, prof, p, result)
		})
	default:
		fatalf("Unknown format %q", *format)
	}
	if *outFile != "" {
		log.Printf("📄 Output written to %s", *outFile)
	}
}

// obtainPlan loads a plan from disk or asks the AI for one.
func obtainPlan(cfg config.Config, request, planPath string, prof *profile.Profile) (*plan.Plan, error) {
	if planPath != "" {
		data, err := os.ReadFile(planPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read plan file: %w", err)
		}
		return translator.ParsePlan(string(data))
	}

	if request == "" {
		return nil, fmt.Errorf("either --request or --plan is required")
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY required for --request")
	}

	t := translator.NewOpenAI(translator.Config{
		APIKey:   cfg.OpenAI.APIKey,
		Model:    cfg.OpenAI.Model,
		Endpoint: cfg.OpenAI.Endpoint,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	return t.CreatePlan(ctx, request, prof)
}

func runServer(cfg config.Config) {
	var tr translator.Translator
	if cfg.OpenAI.APIKey != "" {
		tr = translator.NewOpenAI(translator.Config{
			APIKey:   cfg.OpenAI.APIKey,
			Model:    cfg.OpenAI.Model,
			Endpoint: cfg.OpenAI.Endpoint,
		})
	} else {
		log.Printf("⚠️ OPENAI_API_KEY not set; uploads work but analysis is disabled")
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.New(cfg, tr).Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Survey Agent listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// ============================================================================
// OUTPUT
// ============================================================================

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func writeOutput(path string, write func(*os.File) error) {
	f := os.Stdout
	if path != "" {
		var err error
		f, err = os.Create(path)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
	}
	if err := write(f); err != nil {
		fatalf("Failed to write output: %v", err)
	}
}

type jsonSheet struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type jsonOutput struct {
	Profile  *profile.Profile `json:"profile"`
	Plan     *plan.Plan       `json:"plan"`
	Sheets   []jsonSheet      `json:"sheets"`
	Warnings []engine.Warning `json:"warnings,omitempty"`
}

func writeJSON(f *os.File, prof *profile.Profile, p *plan.Plan, result *engine.ExecutionResult) error {
	out := jsonOutput{Profile: prof, Plan: p, Warnings: result.Warnings}
	for _, sheet := range result.Sheets {
		js := jsonSheet{Name: sheet.Name, Columns: sheet.Data.ColumnNames()}
		for r := 0; r < sheet.Data.RowCount(); r++ {
			row := make([]string, len(js.Columns))
			for i, c := range js.Columns {
				row[i] = sheet.Data.Value(r, c).Display()
			}
			js.Rows = append(js.Rows, row)
		}
		out.Sheets = append(out.Sheets, js)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
