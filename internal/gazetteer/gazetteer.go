// Package gazetteer loads the static lookup sets used to bundle tokens into
// coarse lexical categories.
package gazetteer

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed data/days.txt
var daysTXT string

//go:embed data/months.txt
var monthsTXT string

const (
	PersonalNamesFile = "PersonalNames.txt"
	PlaceNamesFile    = "PlaceNames.txt"
	RomanNumeralsFile = "RomanNumerals.txt"
)

// Set is a read-only set of lowercase entries.
type Set map[string]struct{}

func (s Set) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

func (s Set) Len() int { return len(s) }

// NewSet builds a Set from words, lowercasing and trimming each one.
func NewSet(words ...string) Set {
	set := make(Set, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// ReadSet reads one entry per line.
func ReadSet(r io.Reader) (Set, error) {
	set := Set{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan gazetteer: %w", err)
	}
	return set, nil
}

// Gazetteer bundles every lookup set. Values are shared between goroutines and
// must not be mutated after construction.
type Gazetteer struct {
	Days          Set
	Months        Set
	PersonalNames Set
	PlaceNames    Set
	RomanNumerals Set
}

// Defaults returns days and months only; name, place and numeral sets are empty.
func Defaults() *Gazetteer {
	days, _ := ReadSet(strings.NewReader(daysTXT))
	months, _ := ReadSet(strings.NewReader(monthsTXT))
	return &Gazetteer{
		Days:          days,
		Months:        months,
		PersonalNames: Set{},
		PlaceNames:    Set{},
		RomanNumerals: Set{},
	}
}

// Load reads the name, place and roman numeral lists from dir on top of the
// embedded defaults. A missing file leaves its set empty; any other read
// failure is returned.
func Load(dir string) (*Gazetteer, error) {
	g := Defaults()
	if strings.TrimSpace(dir) == "" {
		return g, nil
	}

	targets := []struct {
		name string
		dst  *Set
	}{
		{PersonalNamesFile, &g.PersonalNames},
		{PlaceNamesFile, &g.PlaceNames},
		{RomanNumeralsFile, &g.RomanNumerals},
	}
	for _, t := range targets {
		set, err := loadFile(filepath.Join(dir, t.name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		*t.dst = set
	}
	return g, nil
}

// WithoutNames returns a copy with the personal and place name lists cleared,
// for corpora where bundling names would hide meaningful vocabulary.
func (g *Gazetteer) WithoutNames() *Gazetteer {
	out := *g
	out.PersonalNames = Set{}
	out.PlaceNames = Set{}
	return &out
}

func loadFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	set, err := ReadSet(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return set, nil
}
