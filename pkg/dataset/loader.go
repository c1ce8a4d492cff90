package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/acadnet/hetgraph/pkg/models"
)

// ErrMissingTable marks a load failure caused by an absent input table.
// Callers can test for it with errors.Is after unwrapping.
var ErrMissingTable = errors.New("input table missing")

// Standard file names of the seven publication tables inside a data directory.
const (
	AuthorLabelFile = "author_label.txt"
	PaperFile       = "paper.txt"
	PaperLabelFile  = "paper_label.txt"
	ConfFile        = "conf.txt"
	ConfLabelFile   = "conf_label.txt"
	PaperAuthorFile = "paper_author.txt"
	PaperConfFile   = "paper_conf.txt"
)

// Dataset holds the typed rows of all seven tables, each slice in the file's
// row order. ConfLabels is the result of the conf/conf_label name join, so a
// conference without a matching label row simply has no entry there.
type Dataset struct {
	Authors     []models.LabeledEntity
	Papers      []models.Entity
	PaperLabels []models.LabeledEntity
	Conferences []models.Entity
	ConfLabels  []models.LabeledEntity
	PaperAuthor []models.Relation
	PaperConf   []models.Relation
}

// Load reads all seven tables from dir using the standard file names and
// performs the conference label join. Any missing or malformed table aborts
// the load.
func Load(dir string) (*Dataset, error) {
	authors, err := LoadLabeledEntities(filepath.Join(dir, AuthorLabelFile))
	if err != nil {
		return nil, fmt.Errorf("author_label: %w", err)
	}

	papers, err := LoadEntities(filepath.Join(dir, PaperFile))
	if err != nil {
		return nil, fmt.Errorf("paper: %w", err)
	}

	paperLabels, err := LoadLabeledEntities(filepath.Join(dir, PaperLabelFile))
	if err != nil {
		return nil, fmt.Errorf("paper_label: %w", err)
	}

	confs, err := LoadEntities(filepath.Join(dir, ConfFile))
	if err != nil {
		return nil, fmt.Errorf("conf: %w", err)
	}

	nameLabels, err := LoadNameLabels(filepath.Join(dir, ConfLabelFile))
	if err != nil {
		return nil, fmt.Errorf("conf_label: %w", err)
	}

	paperAuthor, err := LoadRelations(filepath.Join(dir, PaperAuthorFile))
	if err != nil {
		return nil, fmt.Errorf("paper_author: %w", err)
	}

	paperConf, err := LoadRelations(filepath.Join(dir, PaperConfFile))
	if err != nil {
		return nil, fmt.Errorf("paper_conf: %w", err)
	}

	return &Dataset{
		Authors:     authors,
		Papers:      papers,
		PaperLabels: paperLabels,
		Conferences: confs,
		ConfLabels:  JoinConfLabels(confs, nameLabels),
		PaperAuthor: paperAuthor,
		PaperConf:   paperConf,
	}, nil
}

// LoadLabeledEntities parses a table of `id<TAB>label<TAB>name` rows
// (author_label and paper_label share this layout).
func LoadLabeledEntities(path string) ([]models.LabeledEntity, error) {
	var rows []models.LabeledEntity

	err := scanTable(path, func(lineNo int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("line %d: expected id, label and name columns", lineNo)
		}

		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return fmt.Errorf("line %d: invalid id %q", lineNo, fields[0])
		}

		label, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return fmt.Errorf("line %d: invalid label %q", lineNo, fields[1])
		}

		name := ""
		if len(fields) > 2 {
			name = strings.TrimSpace(fields[2])
		}

		rows = append(rows, models.LabeledEntity{ID: id, Label: label, Name: name})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// LoadEntities parses a table of `id<TAB>name` rows (paper and conf layout).
func LoadEntities(path string) ([]models.Entity, error) {
	var rows []models.Entity

	err := scanTable(path, func(lineNo int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("line %d: expected id and name columns", lineNo)
		}

		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return fmt.Errorf("line %d: invalid id %q", lineNo, fields[0])
		}

		rows = append(rows, models.Entity{ID: id, Name: strings.TrimSpace(fields[1])})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// NameLabel is one row of the conf_label table: a ground-truth label keyed by
// conference name. Any columns after the name are ignored.
type NameLabel struct {
	Label int
	Name  string
}

// LoadNameLabels parses a table of `label<TAB>name[<TAB>ignored]` rows.
func LoadNameLabels(path string) ([]NameLabel, error) {
	var rows []NameLabel

	err := scanTable(path, func(lineNo int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("line %d: expected label and name columns", lineNo)
		}

		label, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return fmt.Errorf("line %d: invalid label %q", lineNo, fields[0])
		}

		rows = append(rows, NameLabel{Label: label, Name: strings.TrimSpace(fields[1])})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// LoadRelations parses a table of `from_id<TAB>to_id` rows.
func LoadRelations(path string) ([]models.Relation, error) {
	var rows []models.Relation

	err := scanTable(path, func(lineNo int, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("line %d: expected two id columns", lineNo)
		}

		from, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return fmt.Errorf("line %d: invalid id %q", lineNo, fields[0])
		}

		to, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return fmt.Errorf("line %d: invalid id %q", lineNo, fields[1])
		}

		rows = append(rows, models.Relation{From: from, To: to})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// JoinConfLabels performs the inner join between the conference table and the
// name-keyed label table. Matching is exact on the trimmed conference name;
// conferences without a matching label row are dropped from the result.
func JoinConfLabels(confs []models.Entity, labels []NameLabel) []models.LabeledEntity {
	byName := make(map[string]int, len(labels))
	for _, nl := range labels {
		byName[normalizeConfName(nl.Name)] = nl.Label
	}

	var joined []models.LabeledEntity
	for _, conf := range confs {
		label, ok := byName[normalizeConfName(conf.Name)]
		if !ok {
			continue
		}
		joined = append(joined, models.LabeledEntity{ID: conf.ID, Label: label, Name: conf.Name})
	}

	return joined
}

func normalizeConfName(name string) string {
	return strings.TrimSpace(name)
}

// scanTable opens a headerless tab-separated file and feeds each non-blank
// line's columns to fn. Values are split on tabs so names may contain spaces.
func scanTable(path string, fn func(lineNo int, fields []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingTable, path)
		}
		return fmt.Errorf("failed to open table: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := fn(lineNo, strings.Split(line, "\t")); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read table %s: %w", path, err)
	}
	return nil
}
