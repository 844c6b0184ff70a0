// Package prompt implements the interactive yes/no confirmation used before
// downloading high-threat file types.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type Decision int

const (
	Confirmed Decision = iota
	Aborted
)

// Confirm runs a small state machine over single-character input: 'y' yields
// Confirmed, 'n' yields Aborted, anything else re-prompts. EOF or a read
// error denies by default.
func Confirm(r io.Reader, w io.Writer, message string) Decision {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprintf(w, "%s: ", message)
		if !scanner.Scan() {
			return Aborted
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y":
			return Confirmed
		case "n":
			return Aborted
		default:
			fmt.Fprintln(w, "Error: Invalid option provided.")
		}
	}
}
