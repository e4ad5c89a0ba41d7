package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ashwch/powermenu/internal/session"
)

// RunPlain drives menu over line-oriented input: a number picks the candidate with
// that position, any other text becomes the new query, and an empty line or EOF
// leaves the menu.
func RunPlain(menu Menu, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	query := ""
	for {
		candidates := menu.List(query)
		printPlainCandidates(out, query, candidates)
		fmt.Fprint(out, "number to select, text to filter, empty to quit: ")

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return nil
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(candidates) {
			query = line
			continue
		}
		outcome, err := menu.Select(candidates[n-1].ID)
		if err != nil {
			return err
		}
		if outcome.Kind == session.OutcomeClose {
			return nil
		}
		if outcome.SelectAll {
			query = ""
		}
	}
}

func printPlainCandidates(out io.Writer, query string, candidates []session.Candidate) {
	header := session.Info().Name
	if query != "" {
		header = fmt.Sprintf("%s: %s", header, query)
	}
	fmt.Fprintln(out, header)
	if len(candidates) == 0 {
		fmt.Fprintln(out, "  no matching actions")
		return
	}
	for idx, candidate := range candidates {
		if candidate.Description == "" {
			fmt.Fprintf(out, "  %d) %s\n", idx+1, candidate.Title)
			continue
		}
		fmt.Fprintf(out, "  %d) %s - %s\n", idx+1, candidate.Title, candidate.Description)
	}
}
