package roadmap

import (
	_ "embed"
	"fmt"

	"github.com/alexanderramin/roadmap/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Days   []seedDay   `yaml:"days"`
	Blocks []seedBlock `yaml:"blocks"`
}

type seedDay struct {
	Day        int         `yaml:"day"`
	Title      string      `yaml:"title"`
	Phase      string      `yaml:"phase"`
	ISTQB      bool        `yaml:"istqb"`
	Status     string      `yaml:"status"`
	Time       *float64    `yaml:"time"`
	Confidence *int        `yaml:"confidence"`
	Learn      []string    `yaml:"learn"`
	Checklist  []seedCheck `yaml:"checklist"`
	Notes      string      `yaml:"notes"`
}

type seedCheck struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
	Done bool   `yaml:"done"`
}

// seedBlock expands into Count generated days starting at Start. Day i of
// the block takes Variants[i % len(Variants)]; CertifiedFrom, when set,
// tags days with i >= CertifiedFrom instead of the variant flag.
type seedBlock struct {
	Start         int           `yaml:"start"`
	Count         int           `yaml:"count"`
	Variants      []seedVariant `yaml:"variants"`
	LastTitle     string        `yaml:"last_title"`
	CertifiedFrom *int          `yaml:"certified_from"`
	Learn         []string      `yaml:"learn"`
	Task          string        `yaml:"task"`
}

type seedVariant struct {
	Title string `yaml:"title"`
	Phase string `yaml:"phase"`
	ISTQB bool   `yaml:"istqb"`
}

// Seed returns the fixed 60-day plan. It panics if the embedded definition
// is malformed, which is a build-time defect.
func Seed() []domain.Unit {
	units, err := ParseSeed(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("roadmap: embedded seed: %v", err))
	}
	return units
}

// ParseSeed decodes a seed definition in the seed.yaml format.
func ParseSeed(data []byte) ([]domain.Unit, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}

	units := make([]domain.Unit, 0, len(f.Days))
	for _, d := range f.Days {
		u, err := d.unit()
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", d.Day, err)
		}
		units = append(units, u)
	}
	for bi, b := range f.Blocks {
		expanded, err := b.expand()
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", bi, err)
		}
		units = append(units, expanded...)
	}
	return units, nil
}

func (d seedDay) unit() (domain.Unit, error) {
	phase, err := domain.ParsePhase(d.Phase)
	if err != nil {
		return domain.Unit{}, err
	}
	status := domain.StatusNotStarted
	if d.Status != "" {
		if status, err = domain.ParseStatus(d.Status); err != nil {
			return domain.Unit{}, err
		}
	}
	checklist := make([]domain.ChecklistItem, 0, len(d.Checklist))
	for _, c := range d.Checklist {
		checklist = append(checklist, domain.ChecklistItem{ID: c.ID, Text: c.Text, Done: c.Done})
	}
	return domain.Unit{
		Index:                 d.Day,
		Title:                 d.Title,
		Phase:                 phase,
		RequiresCertification: d.ISTQB,
		Status:                status,
		TimeSpentHours:        d.Time,
		ConfidenceLevel:       d.Confidence,
		LearningObjectives:    d.Learn,
		Checklist:             checklist,
		Notes:                 d.Notes,
	}, nil
}

func (b seedBlock) expand() ([]domain.Unit, error) {
	if len(b.Variants) == 0 {
		return nil, fmt.Errorf("no variants")
	}
	units := make([]domain.Unit, 0, b.Count)
	for i := 0; i < b.Count; i++ {
		v := b.Variants[i%len(b.Variants)]
		phase, err := domain.ParsePhase(v.Phase)
		if err != nil {
			return nil, err
		}
		day := b.Start + i
		title := v.Title
		if i == b.Count-1 && b.LastTitle != "" {
			title = b.LastTitle
		}
		certified := v.ISTQB
		if b.CertifiedFrom != nil {
			certified = i >= *b.CertifiedFrom
		}
		units = append(units, domain.Unit{
			Index:                 day,
			Title:                 title,
			Phase:                 phase,
			RequiresCertification: certified,
			Status:                domain.StatusNotStarted,
			LearningObjectives:    append([]string(nil), b.Learn...),
			Checklist: []domain.ChecklistItem{
				{ID: fmt.Sprintf("d%d-1", day), Text: b.Task},
			},
		})
	}
	return units, nil
}
