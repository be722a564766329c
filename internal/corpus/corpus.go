// Package corpus loads and validates the word pools a test draws from.
//
// Every corpus handed to the selector satisfies the same invariant:
// non-empty, and every entry is lowercase alphabetic (^[a-z]+$).
package corpus

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

//go:embed word_lists
var builtinFS embed.FS

// OSWordListPath is the conventional dictionary location on Unix-like
// systems. The OS list varies a lot between systems and tends to contain
// esoteric words.
const OSWordListPath = "/usr/share/dict/words"

var builtinFiles = map[string]string{
	"top250": "word_lists/top250.txt",
}

// BuiltinNames returns the available built-in list names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinFiles))
	for name := range builtinFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin loads an embedded word list by name.
func Builtin(name string) ([]string, error) {
	path, ok := builtinFiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown word list %q (available: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	file, err := builtinFS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open built-in word list %q: %w", name, err)
	}
	defer closeQuiet(file)
	words, err := readStrict(file)
	if err != nil {
		return nil, fmt.Errorf("built-in word list %q: %w", name, err)
	}
	return words, nil
}

// LoadFile loads a user-supplied word list, one word per line. Entries are
// lowercased; any entry that is not alphabetic after lowercasing fails the
// load, identifying the entry and its line.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer closeQuiet(file)
	words, err := readStrict(file)
	if err != nil {
		return nil, fmt.Errorf("word list %s: %w", path, err)
	}
	return words, nil
}

// LoadOS loads the OS dictionary. Unlike user files the OS list is noisy by
// nature (possessives, abbreviations), so entries are filtered rather than
// rejected: lowercased, alphabetic only, length 2 to 8.
func LoadOS() ([]string, error) {
	file, err := os.Open(OSWordListPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open OS word list %s: %w", OSWordListPath, err)
	}
	defer closeQuiet(file)
	words, err := readFiltered(file)
	if err != nil {
		return nil, fmt.Errorf("OS word list %s: %w", OSWordListPath, err)
	}
	return words, nil
}

func readStrict(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word := strings.ToLower(line)
		if !isAlpha(word) {
			return nil, fmt.Errorf("invalid word %q on line %d: words must contain only letters", line, lineNo)
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

func readFiltered(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if len(word) < 2 || len(word) > 8 || !isAlpha(word) {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no usable words after filtering")
	}
	return words, nil
}

func isAlpha(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}

func closeQuiet(c io.Closer) {
	if cerr := c.Close(); cerr != nil {
		// Best-effort close for read-only word list.
		_ = cerr
	}
}
