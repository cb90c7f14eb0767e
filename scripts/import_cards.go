package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/magefree/hollowdeck/internal/game/cards"
)

// Expected header of the card export. Column order does not matter.
var columns = []string{"name", "kind", "cost", "damage", "region", "sound", "image", "require_health_above", "flavor", "ops"}

type catalogFile struct {
	Cards []*cards.Definition `yaml:"cards"`
}

func main() {
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	csvPath := "data/cards_export.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	absPath, err := filepath.Abs(csvPath)
	if err != nil {
		log.Fatalf("Failed to get absolute path: %v", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	defs, err := readDefinitions(file)
	if err != nil {
		log.Fatalf("Failed to read cards: %v", err)
	}

	data, err := encodeCatalog(defs)
	if err != nil {
		log.Fatalf("Failed to encode catalog: %v", err)
	}

	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	fmt.Fprintf(os.Stderr, "Imported %d cards from %s into %s\n", len(defs), absPath, *out)
}

func readDefinitions(r io.Reader) ([]*cards.Definition, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("CSV file is empty or has no data rows")
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, errors.New("missing name column")
	}
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}
	for h := range index {
		if !known[h] {
			log.Printf("Warning: Ignoring unknown column %q", h)
		}
	}
	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	defs := make([]*cards.Definition, 0, len(records)-1)
	for row, record := range records[1:] {
		line := row + 2
		def := &cards.Definition{
			Name:   field(record, "name"),
			Kind:   cards.Kind(strings.ToLower(field(record, "kind"))),
			Cost:   field(record, "cost"),
			Region: field(record, "region"),
			Sound:  field(record, "sound"),
			Image:  field(record, "image"),
			Flavor: field(record, "flavor"),
		}
		if def.Name == "" {
			log.Printf("Warning: Skipping row %d - no name", line)
			continue
		}
		if def.Damage, err = parseInt(field(record, "damage")); err != nil {
			return nil, fmt.Errorf("row %d: damage: %w", line, err)
		}
		if def.RequireHealthAbove, err = parseInt(field(record, "require_health_above")); err != nil {
			return nil, fmt.Errorf("row %d: require_health_above: %w", line, err)
		}
		if def.Ops, err = parseOps(field(record, "ops")); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		defs = append(defs, def)
	}

	// The catalog validates names, kinds, costs, and ops.
	if _, err := cards.NewCatalog(defs...); err != nil {
		return nil, err
	}
	return defs, nil
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// parseOps reads "heal:5;buff:guard:2;draw:1". Buff and debuff ops take an
// effect and a duration; the rest take an amount. A trailing number after a
// buff duration is its magnitude.
func parseOps(s string) ([]cards.Op, error) {
	if s == "" {
		return nil, nil
	}
	var ops []cards.Op
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		op := cards.Op{Type: cards.OpType(strings.ToLower(fields[0]))}
		args := fields[1:]
		if op.Type == cards.OpBuff || op.Type == cards.OpDebuff {
			if len(args) == 0 {
				return nil, fmt.Errorf("op %q: missing effect", part)
			}
			op.Effect = strings.ToLower(args[0])
			args = args[1:]
			if len(args) > 0 {
				d, err := strconv.Atoi(args[0])
				if err != nil {
					return nil, fmt.Errorf("op %q: duration: %w", part, err)
				}
				op.Duration = d
				args = args[1:]
			}
		}
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("op %q: amount: %w", part, err)
			}
			op.Amount = n
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func encodeCatalog(defs []*cards.Definition) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# Generated by scripts/import_cards.go\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Cards: defs}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
