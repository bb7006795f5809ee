// Package main summarizes a JSONL audit trail written by the server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"medmcp/internal/audit"
	"medmcp/internal/platform/config"
)

func main() {
	_ = godotenv.Load()

	path := flag.String("file", "", "Audit file. Defaults to MCP_AUDIT_SINK_PATH.")
	since := flag.Duration("since", 0, "Only entries newer than this, e.g. 1h")
	event := flag.String("event", "", "Only this event type, e.g. authentication")
	failures := flag.Bool("failures", false, "Only failed entries")
	top := flag.Int("top", 5, "Length of the client IP and user lists")
	jsonOutput := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	if *path == "" {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
			os.Exit(1)
		}
		*path = cfg.AuditSinkPath
	}

	entries, err := audit.ReadEntries(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *path, err)
		os.Exit(1)
	}

	filter := audit.Filter{EventType: audit.EventType(*event), FailuresOnly: *failures}
	if *since > 0 {
		filter.Since = time.Now().Add(-*since)
	}
	summary := audit.Summarize(entries, filter, *top)

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
		return
	}
	printSummary(*path, summary)
}

func printSummary(path string, s audit.Summary) {
	fmt.Printf("Audit trail: %s\n", path)
	if s.Total == 0 {
		fmt.Println("No matching entries.")
		return
	}
	fmt.Printf("Entries: %d (failures %d, rate limited %d)\n", s.Total, s.Failures, s.RateLimited)
	fmt.Printf("Window:  %s .. %s\n\n", s.First.Format(time.RFC3339), s.Last.Format(time.RFC3339))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	section(w, "EVENT TYPE", s.ByEventType)
	section(w, "CLIENT IP", s.TopClientIPs)
	section(w, "USER", s.TopUsers)
	_ = w.Flush()
}

func section(w *tabwriter.Writer, title string, counts []audit.Count) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "%s\tCOUNT\n", title)
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%d\n", c.Key, c.Count)
	}
	fmt.Fprintln(w)
}
