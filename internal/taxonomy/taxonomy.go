// Package taxonomy holds the fixed skill-category taxonomy and the priority
// cue lists used to analyse ticket text. The data is embedded so a default
// build needs no external files, and can be replaced wholesale from a YAML
// file for deployments with a different skill catalogue.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomy []byte

// PriorityCues lists urgency trigger terms per tier, checked in descending
// tier order by the classifier.
type PriorityCues struct {
	Critical []string `yaml:"critical"`
	High     []string `yaml:"high"`
	Medium   []string `yaml:"medium"`
	Low      []string `yaml:"low"`
}

// Taxonomy maps skill category names to their trigger terms. It is read-only
// after load; every lookup is deterministic.
type Taxonomy struct {
	Skills     map[string][]string `yaml:"skills"`
	Priorities PriorityCues        `yaml:"priorities"`

	categories []string
}

// Default returns the embedded taxonomy.
func Default() (*Taxonomy, error) {
	return parse(defaultTaxonomy)
}

// New builds a taxonomy from in-memory data. Intended for callers that
// assemble small, scenario-specific taxonomies, such as tests.
func New(skills map[string][]string, cues PriorityCues) (*Taxonomy, error) {
	t := Taxonomy{Skills: skills, Priorities: cues}
	return finalize(&t)
}

// LoadFile reads a taxonomy from a YAML file, replacing the embedded default.
func LoadFile(path string) (*Taxonomy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	return finalize(&t)
}

func finalize(t *Taxonomy) (*Taxonomy, error) {
	if len(t.Skills) == 0 {
		return nil, fmt.Errorf("taxonomy defines no skill categories")
	}

	t.categories = make([]string, 0, len(t.Skills))
	for name, terms := range t.Skills {
		if len(terms) == 0 {
			return nil, fmt.Errorf("taxonomy category %q has no trigger terms", name)
		}
		for i, term := range terms {
			terms[i] = strings.ToLower(term)
		}
		t.categories = append(t.categories, name)
	}
	sort.Strings(t.categories)

	return t, nil
}

// Categories returns all skill category names in sorted order.
func (t *Taxonomy) Categories() []string {
	out := make([]string, len(t.categories))
	copy(out, t.categories)
	return out
}

// Match returns the skill categories triggered by the given free text, sorted
// by name. A category matches when any of its trigger terms occurs as a
// lower-cased substring of the text. An empty result is legal: the allocator
// treats it as a generalist ticket.
func (t *Taxonomy) Match(text string) []string {
	lower := strings.ToLower(text)

	var matched []string
	for _, name := range t.categories {
		for _, term := range t.Skills[name] {
			if strings.Contains(lower, term) {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched
}
