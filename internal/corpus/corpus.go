// Package corpus loads password corpora from files.
package corpus

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const maxLineSize = 64 * 1024 * 1024

// IOError reports a corpus file that could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read corpus %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Check verifies that path can be opened for reading.
func Check(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	if cerr := file.Close(); cerr != nil {
		// Best-effort close for preflight.
		_ = cerr
	}
	return nil
}

// Load reads one password per line from path. Bytes are decoded as ISO-8859-1,
// lines are stripped and empty lines are dropped. Order and duplicates are kept.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only corpus.
			_ = cerr
		}
	}()

	passwords, err := Read(file)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return passwords, nil
}

// Read decodes r the same way Load decodes a file.
func Read(r io.Reader) ([]string, error) {
	decoded := transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanUniversalLines)

	var passwords []string
	for scanner.Scan() {
		line := strings.TrimFunc(scanner.Text(), isStripSpace)
		if line == "" {
			continue
		}
		passwords = append(passwords, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return passwords, nil
}

// isStripSpace reports Unicode whitespace plus the ASCII information
// separators U+001C..U+001F, which Python's str.strip also removes.
func isStripSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// scanUniversalLines splits on \n, \r\n and a lone \r.
func scanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// Need one more byte to tell \r from \r\n.
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
