// Package qcio reads and writes the QChem input deck and the parsed-output
// summary the corrector works against. Parsing the raw QChem log itself is
// the job of the external output parser; this package only consumes its
// structured summary.
package qcio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Atom is one species/position row of a $molecule section.
type Atom struct {
	Species string     `json:"species"`
	Coords  [3]float64 `json:"coords"`
}

// Molecule is the charge/spin/geometry descriptor of an input deck.
type Molecule struct {
	Charge           int    `json:"charge"`
	SpinMultiplicity int    `json:"spin_multiplicity"`
	Atoms            []Atom `json:"atoms"`
}

// Rem is the deck's settings mapping. Keys are case-insensitive (stored
// lowercase) and iteration order is the order keys first appeared, so a
// rewritten deck stays diffable against the original.
type Rem struct {
	keys []string
	vals map[string]string
}

// NewRem returns an empty settings mapping.
func NewRem() *Rem {
	return &Rem{vals: make(map[string]string)}
}

// Get returns the value for key and whether it is set.
func (r *Rem) Get(key string) (string, bool) {
	v, ok := r.vals[strings.ToLower(key)]
	return v, ok
}

// GetDefault returns the value for key, or def when unset.
func (r *Rem) GetDefault(key, def string) string {
	if v, ok := r.Get(key); ok {
		return v
	}
	return def
}

// Set stores key = value. New keys append to the iteration order.
func (r *Rem) Set(key, value string) {
	k := strings.ToLower(key)
	if _, ok := r.vals[k]; !ok {
		r.keys = append(r.keys, k)
	}
	r.vals[k] = value
}

// Keys returns the keys in first-appearance order.
func (r *Rem) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of settings.
func (r *Rem) Len() int { return len(r.keys) }

// MarshalJSON emits the settings as an object in key order.
func (r *Rem) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// rawSection preserves deck sections this package does not model
// (e.g. $opt, $basis) so a rewrite does not drop them.
type rawSection struct {
	name  string
	lines []string
}

// Deck is a mutable QChem input deck: a molecule descriptor plus the
// $rem settings mapping, with any other sections carried through verbatim.
type Deck struct {
	Molecule Molecule `json:"molecule"`
	Rem      *Rem     `json:"rem"`

	extras []rawSection
	// order of section names as they appeared in the source file;
	// sections added in memory append.
	order []string
}

// NewDeck returns an empty deck with molecule and rem sections.
func NewDeck() *Deck {
	return &Deck{Rem: NewRem(), order: []string{"molecule", "rem"}}
}

// LoadDeck reads and parses a QChem input deck from path.
func LoadDeck(path string) (*Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck %s: %w", path, err)
	}
	defer f.Close()

	d := &Deck{Rem: NewRem()}
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		if !strings.HasPrefix(line, "$") {
			return nil, fmt.Errorf("deck %s:%d: expected section header, got %q", path, lineNo, line)
		}
		name := strings.ToLower(strings.TrimPrefix(line, "$"))
		body, n, err := readSection(sc)
		lineNo += n
		if err != nil {
			return nil, fmt.Errorf("deck %s: section $%s: %w", path, name, err)
		}
		switch name {
		case "molecule":
			mol, err := parseMolecule(body)
			if err != nil {
				return nil, fmt.Errorf("deck %s: $molecule: %w", path, err)
			}
			d.Molecule = mol
		case "rem":
			if err := parseRem(d.Rem, body); err != nil {
				return nil, fmt.Errorf("deck %s: $rem: %w", path, err)
			}
		default:
			d.extras = append(d.extras, rawSection{name: name, lines: body})
		}
		d.order = append(d.order, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}
	return d, nil
}

// readSection collects lines until the matching $end.
func readSection(sc *bufio.Scanner) ([]string, int, error) {
	var body []string
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if strings.EqualFold(line, "$end") {
			return body, n, nil
		}
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		body = append(body, line)
	}
	if err := sc.Err(); err != nil {
		return nil, n, err
	}
	return nil, n, fmt.Errorf("missing $end")
}

func parseMolecule(body []string) (Molecule, error) {
	if len(body) == 0 {
		return Molecule{}, fmt.Errorf("empty section")
	}
	head := strings.Fields(body[0])
	if len(head) != 2 {
		return Molecule{}, fmt.Errorf("charge/spin line %q malformed", body[0])
	}
	charge, err := strconv.Atoi(head[0])
	if err != nil {
		return Molecule{}, fmt.Errorf("charge %q: %w", head[0], err)
	}
	spin, err := strconv.Atoi(head[1])
	if err != nil {
		return Molecule{}, fmt.Errorf("spin multiplicity %q: %w", head[1], err)
	}
	mol := Molecule{Charge: charge, SpinMultiplicity: spin}
	for _, line := range body[1:] {
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return Molecule{}, fmt.Errorf("atom line %q malformed", line)
		}
		atom := Atom{Species: fields[0]}
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return Molecule{}, fmt.Errorf("atom line %q coordinate %d: %w", line, i, err)
			}
			atom.Coords[i] = v
		}
		mol.Atoms = append(mol.Atoms, atom)
	}
	return mol, nil
}

func parseRem(rem *Rem, body []string) error {
	for _, line := range body {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			// QChem also accepts whitespace-separated pairs.
			fields := strings.Fields(line)
			if len(fields) != 2 {
				return fmt.Errorf("entry %q malformed", line)
			}
			key, value = fields[0], fields[1]
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			return fmt.Errorf("entry %q malformed", line)
		}
		rem.Set(key, value)
	}
	return nil
}

// String renders the deck in QChem input format.
func (d *Deck) String() string {
	var b strings.Builder
	order := d.order
	if len(order) == 0 {
		order = []string{"molecule", "rem"}
	}
	// A deck loaded without these sections still needs them on rewrite:
	// the corrector may have populated rem, and QChem requires a molecule.
	for _, required := range []string{"molecule", "rem"} {
		found := false
		for _, name := range order {
			if name == required {
				found = true
				break
			}
		}
		if !found {
			order = append(order, required)
		}
	}
	extras := d.extras
	for i, name := range order {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch name {
		case "molecule":
			writeMolecule(&b, d.Molecule)
		case "rem":
			writeRem(&b, d.Rem)
		default:
			if len(extras) > 0 {
				writeRaw(&b, extras[0])
				extras = extras[1:]
			}
		}
	}
	return b.String()
}

func writeMolecule(b *strings.Builder, mol Molecule) {
	fmt.Fprintf(b, "$molecule\n %d %d\n", mol.Charge, mol.SpinMultiplicity)
	for _, a := range mol.Atoms {
		fmt.Fprintf(b, " %-3s %14.8f %14.8f %14.8f\n", a.Species, a.Coords[0], a.Coords[1], a.Coords[2])
	}
	b.WriteString("$end\n")
}

func writeRem(b *strings.Builder, rem *Rem) {
	b.WriteString("$rem\n")
	if rem != nil {
		for _, k := range rem.Keys() {
			v, _ := rem.Get(k)
			fmt.Fprintf(b, "   %s = %s\n", k, v)
		}
	}
	b.WriteString("$end\n")
}

func writeRaw(b *strings.Builder, s rawSection) {
	fmt.Fprintf(b, "$%s\n", s.name)
	for _, line := range s.lines {
		fmt.Fprintf(b, "   %s\n", line)
	}
	b.WriteString("$end\n")
}

// WriteFile serializes the deck to path. The write is atomic (temp file
// plus rename) so a crash mid-write cannot leave a truncated deck behind.
func (d *Deck) WriteFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp deck: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(d.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write deck: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close deck: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace deck %s: %w", path, err)
	}
	return nil
}
