package lode

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed levels/*.yaml
var levelFS embed.FS

// Layout runes.
const (
	runeEmpty  = ' '
	runeBrick  = '#'
	runeSolid  = '='
	runeLadder = 'H'
	runeRope   = '-'
	runeChest  = '$'
	runeHero   = '&'
	runeEnemy  = '0'
)

// StageDef is one stage as written in a level file.
type StageDef struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Layout []string `yaml:"layout"`
}

// Width returns the width of the widest layout row.
func (d StageDef) Width() int {
	w := 0
	for _, row := range d.Layout {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}
	return w
}

// Height returns the number of layout rows.
func (d StageDef) Height() int {
	return len(d.Layout)
}

// ParseStage parses and validates a YAML stage definition.
func ParseStage(data []byte) (StageDef, error) {
	var def StageDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return StageDef{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := def.validate(); err != nil {
		return StageDef{}, err
	}
	return def, nil
}

func (d StageDef) validate() error {
	if d.ID == "" {
		return errors.New("stage has no id")
	}
	if len(d.Layout) == 0 {
		return fmt.Errorf("stage %s: empty layout", d.ID)
	}

	heroes, chests := 0, 0
	for y, row := range d.Layout {
		for x, r := range []rune(row) {
			switch r {
			case runeHero:
				heroes++
			case runeChest:
				chests++
			case runeEmpty, runeBrick, runeSolid, runeLadder, runeRope, runeEnemy:
			default:
				return fmt.Errorf("stage %s: unknown tile %q at %d,%d", d.ID, r, x, y)
			}
		}
	}
	if heroes != 1 {
		return fmt.Errorf("stage %s: want exactly one hero, found %d", d.ID, heroes)
	}
	if chests == 0 {
		return fmt.Errorf("stage %s: no chests", d.ID)
	}
	return nil
}

// Pack is an ordered set of stage definitions. Level n plays stage n modulo
// the pack size.
type Pack struct {
	defs []StageDef
}

// NewPack creates a pack from definitions, in order.
func NewPack(defs ...StageDef) *Pack {
	return &Pack{defs: defs}
}

// LoadPack parses every .yaml file in dir. Invalid files are skipped and
// reported in the returned error; the pack holds the valid ones, sorted by ID.
func LoadPack(fsys fs.FS, dir string) (*Pack, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return NewPack(), fmt.Errorf("reading %s: %w", dir, err)
	}

	var defs []StageDef
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".yaml") {
			continue
		}
		file := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading %s: %w", file, err))
			continue
		}
		def, err := ParseStage(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("parsing %s: %w", file, err))
			continue
		}
		defs = append(defs, def)
	}

	// Sort by ID for determinism
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})

	return NewPack(defs...), errors.Join(errs...)
}

var (
	defaultPackOnce sync.Once
	defaultPack     *Pack
	defaultPackErr  error
)

// DefaultPack returns the embedded stage pack.
func DefaultPack() (*Pack, error) {
	defaultPackOnce.Do(func() {
		defaultPack, defaultPackErr = LoadPack(levelFS, "levels")
	})
	return defaultPack, defaultPackErr
}

// Len returns the number of stages.
func (p *Pack) Len() int {
	if p == nil {
		return 0
	}
	return len(p.defs)
}

// For returns the definition played at a level index.
func (p *Pack) For(level int) (StageDef, bool) {
	if p.Len() == 0 || level < 0 {
		return StageDef{}, false
	}
	return p.defs[level%len(p.defs)], true
}
