package interview

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/framework"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/maturity"
)

//go:embed questions.yaml
var questionsYAML []byte

// PillarSetup marks questions that gather engagement metadata rather
// than scoring a dimension. Setup questions never map to the document.
const PillarSetup = "setup"

// Question is one interview prompt. Pillar and Dimension name the
// document slot an answer lands in; the indicator phrases guide the
// analysis service toward a level.
type Question struct {
	ID         string                      `yaml:"id"`
	Pillar     string                      `yaml:"pillar"`
	Dimension  string                      `yaml:"dimension"`
	Question   string                      `yaml:"question"`
	Context    string                      `yaml:"context"`
	Indicators map[maturity.Level][]string `yaml:"indicators"`
}

// Bank is the ordered, validated question list.
type Bank struct {
	SchemaVersion string     `yaml:"schemaVersion"`
	Questions     []Question `yaml:"questions"`

	byID map[string]*Question
}

var bankOnce = sync.OnceValues(loadBank)

// LoadBank parses and validates the embedded question bank. The result
// is cached; repeated calls return the same value.
func LoadBank() (*Bank, error) {
	return bankOnce()
}

func loadBank() (*Bank, error) {
	catalog, err := framework.Load()
	if err != nil {
		return nil, err
	}

	var bank Bank
	if err := yaml.Unmarshal(questionsYAML, &bank); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(bank.Questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	bank.byID = make(map[string]*Question, len(bank.Questions))
	for i := range bank.Questions {
		q := &bank.Questions[i]
		if q.ID == "" {
			return nil, fmt.Errorf("question %d: missing id", i)
		}
		if _, dup := bank.byID[q.ID]; dup {
			return nil, fmt.Errorf("question %q: duplicate id", q.ID)
		}
		if q.Question == "" {
			return nil, fmt.Errorf("question %q: missing prompt text", q.ID)
		}

		switch {
		case q.Pillar == PillarSetup:
			if q.Dimension != "" {
				return nil, fmt.Errorf("question %q: setup questions cannot target a dimension", q.ID)
			}
		case assessment.PillarID(q.Pillar).Valid():
			if !catalog.HasDimension(q.Pillar, q.Dimension) {
				return nil, fmt.Errorf("question %q: pillar %q has no dimension %q", q.ID, q.Pillar, q.Dimension)
			}
		default:
			return nil, fmt.Errorf("question %q: unknown pillar %q", q.ID, q.Pillar)
		}

		for level := range q.Indicators {
			if !level.Valid() {
				return nil, fmt.Errorf("question %q: unknown indicator level %q", q.ID, level)
			}
		}
		bank.byID[q.ID] = q
	}
	return &bank, nil
}

// ByID returns the question with the given id, or nil.
func (b *Bank) ByID(id string) *Question {
	return b.byID[id]
}

// Scored returns the questions that map to a document dimension, in
// bank order.
func (b *Bank) Scored() []Question {
	var out []Question
	for _, q := range b.Questions {
		if q.Pillar != PillarSetup && q.Dimension != "" {
			out = append(out, q)
		}
	}
	return out
}
