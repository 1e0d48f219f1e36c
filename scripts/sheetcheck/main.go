// Command sheetcheck fetches the consolidated sheet snapshot and reports
// integrity problems: duplicate or malformed ids, rows that reference
// unknown students or assignments, and values the API would refuse to
// serve. Exit code 1 signals at least one finding.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nbdwit/club-api/internal/models"
	"github.com/nbdwit/club-api/internal/sheet"
)

type finding struct {
	Collection string
	Row        string
	Problem    string
}

func main() {
	var (
		endpoint string
		timeout  time.Duration
		verbose  bool
	)

	flag.StringVar(&endpoint, "endpoint", os.Getenv("SHEET_ENDPOINT"), "Sheet web-app URL")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP client timeout")
	flag.BoolVar(&verbose, "verbose", false, "Print collection counts even when clean")
	flag.Parse()

	if endpoint == "" {
		log.Fatal("no endpoint: pass -endpoint or set SHEET_ENDPOINT")
	}

	client := sheet.NewClient(sheet.Options{Endpoint: endpoint, Timeout: timeout}, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	raw, err := client.FetchSnapshot(ctx)
	if err != nil {
		log.Fatalf("failed to fetch snapshot: %v", err)
	}
	snap := sheet.Normalize(raw)

	findings := checkSnapshot(snap)
	printReport(snap, findings, verbose)

	if len(findings) > 0 {
		os.Exit(1)
	}
}

func checkSnapshot(snap *models.Snapshot) []finding {
	var out []finding
	add := func(collection, row, problem string) {
		out = append(out, finding{Collection: collection, Row: row, Problem: problem})
	}

	studentIDs := make(map[string]bool, len(snap.Students))
	for _, s := range snap.Students {
		switch {
		case !validStudentID(s.ID):
			add("students", s.ID, "id is not five digits")
		case studentIDs[s.ID]:
			add("students", s.ID, "duplicate id")
		default:
			studentIDs[s.ID] = true
		}
		if s.Name == "" {
			add("students", s.ID, "empty name")
		}
		if !models.ValidLevel(s.Level) {
			add("students", s.ID, fmt.Sprintf("unknown level %q", s.Level))
		}
		if s.Room < models.RoomMin || s.Room > models.RoomMax {
			add("students", s.ID, fmt.Sprintf("room %d out of range", s.Room))
		}
	}

	for _, rec := range snap.Attendance {
		row := rec.Date + "/" + rec.StudentID
		if !rec.Status.Valid() {
			add("attendance", row, fmt.Sprintf("unknown status %q", rec.Status))
		}
		if _, err := time.Parse("2006-01-02", rec.Date); err != nil {
			add("attendance", row, fmt.Sprintf("unparseable date %q", rec.Date))
		}
		if !studentIDs[rec.StudentID] {
			add("attendance", row, "references unknown student")
		}
	}

	for _, a := range snap.Announcements {
		if a.Title == "" {
			add("announcements", a.ID, "empty title")
		}
		if a.CreatedAt != "" && models.ParseCreatedAt(a.CreatedAt).IsZero() {
			add("announcements", a.ID, fmt.Sprintf("unparseable createdAt %q", a.CreatedAt))
		}
	}

	assignmentIDs := make(map[string]bool, len(snap.Assignments))
	for _, a := range snap.Assignments {
		if assignmentIDs[a.ID] {
			add("assignments", a.ID, "duplicate id")
		}
		assignmentIDs[a.ID] = true
		if a.Title == "" {
			add("assignments", a.ID, "empty title")
		}
	}

	for _, s := range snap.Submissions {
		if !assignmentIDs[s.AssignmentID] {
			add("submissions", s.ID, fmt.Sprintf("references unknown assignment %q", s.AssignmentID))
		}
		if !studentIDs[s.StudentID] {
			add("submissions", s.ID, fmt.Sprintf("references unknown student %q", s.StudentID))
		}
		if !s.Type.Valid() {
			add("submissions", s.ID, fmt.Sprintf("unknown type %q", s.Type))
		}
		if s.Status != "" && !s.Status.Valid() {
			add("submissions", s.ID, fmt.Sprintf("unknown evaluation %q", s.Status))
		}
	}

	return out
}

func validStudentID(id string) bool {
	if len(id) != 5 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func printReport(snap *models.Snapshot, findings []finding, verbose bool) {
	if verbose || len(findings) > 0 {
		fmt.Println("Sheet Integrity Report")
		fmt.Println("======================")
		fmt.Printf("students: %d, attendance: %d, announcements: %d, assignments: %d, submissions: %d\n",
			len(snap.Students), len(snap.Attendance), len(snap.Announcements), len(snap.Assignments), len(snap.Submissions))
	}
	for _, f := range findings {
		fmt.Printf("[%s] %s: %s\n", f.Collection, f.Row, f.Problem)
	}
	fmt.Printf("Findings: %d\n", len(findings))
}
