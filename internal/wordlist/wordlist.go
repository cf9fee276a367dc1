// Package wordlist loads word corpora from the texts directory and the built-in texts.
package wordlist

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const textExt = ".txt"

//go:embed texts/*.txt
var builtin embed.FS

// ErrUnknownText is returned when no user or built-in text has the requested name.
var ErrUnknownText = errors.New("unknown text")

// Source tells where a text comes from.
type Source string

// Text sources.
const (
	SourceBuiltin Source = "builtin"
	SourceUser    Source = "user"
)

// Text describes an available corpus.
type Text struct {
	Name   string
	Source Source
	Path   string
}

// Loader resolves text names to corpora. Files in Dir shadow built-in texts.
type Loader struct {
	Dir string
}

// NewLoader returns a loader reading user texts from dir. An empty dir
// disables user texts.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load returns the words of the named text. An existing text with no words
// yields an empty corpus, not an error.
func (l *Loader) Load(name string) ([]string, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid text name %q", name)
	}
	if path, ok := l.userPath(name); ok {
		words, err := LoadWords(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load text %q: %w", name, err)
		}
		return words, nil
	}
	file, err := builtin.Open("texts/" + strings.TrimSuffix(name, textExt) + textExt)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w %q", ErrUnknownText, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open built-in text %q: %w", name, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return ParseWords(file, FilterForText(name))
}

func (l *Loader) userPath(name string) (string, bool) {
	if l.Dir == "" {
		return "", false
	}
	for _, candidate := range []string{name, name + textExt} {
		path := filepath.Join(l.Dir, candidate)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// Texts lists built-in and user texts sorted by name. A user text with the
// same name as a built-in one replaces it.
func (l *Loader) Texts() ([]Text, error) {
	byName := make(map[string]Text)
	entries, err := builtin.ReadDir("texts")
	if err != nil {
		return nil, fmt.Errorf("failed to list built-in texts: %w", err)
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), textExt)
		byName[name] = Text{Name: name, Source: SourceBuiltin}
	}
	if l.Dir != "" {
		entries, err := os.ReadDir(l.Dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to list texts in %s: %w", l.Dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), textExt)
			byName[name] = Text{Name: name, Source: SourceUser, Path: filepath.Join(l.Dir, entry.Name())}
		}
	}
	out := make([]Text, 0, len(byName))
	for _, text := range byName {
		out = append(out, text)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// LoadWords reads whitespace-delimited words from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return ParseWords(file, FilterPrintable)
}

// ParseWords splits r on whitespace and keeps the words accepted by keep.
func ParseWords(r io.Reader, keep FilterFunc) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := scanner.Text()
		if keep != nil && !keep(word) {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
