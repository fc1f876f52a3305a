// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/oracle/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSearchRequest outputs a human-readable summary of the search about to run.
func (p *Printer) PrintSearchRequest(req *types.SearchRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Query:    %s\n", req.Query))
	if req.ContentType != "" && req.ContentType != "any" {
		sb.WriteString(fmt.Sprintf("Type:     %s\n", req.ContentType))
	}
	if len(req.Genres) > 0 {
		sb.WriteString(fmt.Sprintf("Genres:   %s\n", strings.Join(req.Genres, ", ")))
	}
	if len(req.Services) > 0 {
		sb.WriteString(fmt.Sprintf("Services: %s\n", strings.Join(req.Services, ", ")))
	}
	if req.LengthPreference != "" && req.LengthPreference != types.LengthAny {
		sb.WriteString(fmt.Sprintf("Length:   %s\n", req.LengthPreference))
	}
	if req.PersonalPreferences != nil && len(req.PersonalPreferences.FavoriteGenres) > 0 {
		sb.WriteString(fmt.Sprintf("Likes:    %s\n", strings.Join(req.PersonalPreferences.FavoriteGenres, ", ")))
	}

	p.printBox("SEARCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResults outputs the top ranked candidates with scores.
func (p *Printer) PrintResults(resp *types.SearchResponse) {
	if resp == nil || len(resp.Results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates: %d\n\n", resp.TotalCandidates))

	count := min(len(resp.Results), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := resp.Results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s", i+1, c.Title))
		if c.Year > 0 {
			sb.WriteString(fmt.Sprintf(" (%d)", c.Year))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    %s", c.Kind))
		if c.PersonalScore != nil {
			sb.WriteString(fmt.Sprintf("  score: %.2f", *c.PersonalScore))
		}
		if c.Ratings != nil && c.Ratings.CriticScore != nil {
			sb.WriteString(fmt.Sprintf("  critics: %.1f", *c.Ratings.CriticScore))
		}
		sb.WriteString("\n")
		if len(c.Genres) > 0 {
			genres := strings.Join(c.Genres, ", ")
			if len(genres) > 40 {
				genres = genres[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Genres: %s\n", genres))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(resp.Results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more results", len(resp.Results)-maxItemsToShow))
	}

	p.printBox("RANKED RESULTS", sb.String())
}

// PrintAvailability outputs where a candidate can be watched.
func (p *Printer) PrintAvailability(c *types.Candidate) {
	if c == nil || len(c.Availability) == 0 {
		return
	}

	var sb strings.Builder
	for _, a := range c.Availability {
		sb.WriteString(fmt.Sprintf("%s (%s", a.Provider, a.AccessType))
		if a.Price != nil {
			sb.WriteString(fmt.Sprintf(", $%.2f", *a.Price))
		}
		sb.WriteString(")\n")
	}

	p.printBox("WHERE TO WATCH: "+c.Title, strings.TrimSuffix(sb.String(), "\n"))
}
