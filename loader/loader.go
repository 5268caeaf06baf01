// Package loader turns valve descriptions into a ready-to-search Instance.
//
// Two input formats are accepted:
//
//	Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
//	Valve HH has flow rate=22; tunnel leads to valve GG
//
// one valve per line (blank lines ignored), and a YAML document
//
//	valves:
//	  - {id: AA, rate: 0, tunnels: [DD, II, BB]}
//
// Load-time checks are where malformed or disconnected input is reported:
// the search engines assume an internally consistent Instance.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/valvenet/network"
)

// ErrSyntax is wrapped by every ParseError.
var ErrSyntax = errors.New("loader: syntax error")

// ParseError locates a malformed input line.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("loader: line %d: cannot parse %q", e.Line, e.Text)
}

// Unwrap lets errors.Is(err, ErrSyntax) match.
func (e *ParseError) Unwrap() error { return ErrSyntax }

var lineRx = regexp.MustCompile(
	`^Valve ([A-Za-z]+) has flow rate=(\d+); (?:tunnels lead to valves|tunnel leads to valve) ([A-Za-z]+(?:, [A-Za-z]+)*)$`,
)

// Parse reads the one-valve-per-line text format.
func Parse(r io.Reader) ([]network.Valve, error) {
	var (
		valves []network.Valve
		sc     = bufio.NewScanner(r)
		line   int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		m := lineRx.FindStringSubmatch(text)
		if m == nil {
			return nil, &ParseError{Line: line, Text: text}
		}
		rate, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, &ParseError{Line: line, Text: text}
		}
		valves = append(valves, network.Valve{
			ID:      m[1],
			Rate:    rate,
			Tunnels: strings.Split(m[3], ", "),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("loader: read: %w", err)
	}
	return valves, nil
}

// LoadFile reads path, choosing the YAML decoder for .yaml/.yml files and
// the text format otherwise.
func LoadFile(path string) ([]network.Valve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return Parse(f)
	}
}
