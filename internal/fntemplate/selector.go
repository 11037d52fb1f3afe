package fntemplate

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ChoiceKind tells what the user picked in the source selector.
type ChoiceKind int

const (
	ChoiceTemplate ChoiceKind = iota
	ChoiceURL
	ChoiceReport
)

// Values of the two special entries.
const (
	URLChoiceValue    = "url"
	ReportChoiceValue = "report"
)

type Choice struct {
	Kind     ChoiceKind
	Template Descriptor
	Score    int
}

// Value is a stable key for the choice, usable as a prompt option value.
func (c Choice) Value() string {
	switch c.Kind {
	case ChoiceURL:
		return URLChoiceValue
	case ChoiceReport:
		return ReportChoiceValue
	default:
		return "template:" + c.Template.ID()
	}
}

// Label is what the picker shows for the choice.
func (c Choice) Label() string {
	switch c.Kind {
	case ChoiceURL:
		return "*** Clone template from GitHub URL ***"
	case ChoiceReport:
		return "*** Report issue with, or suggest a new template ***"
	default:
		return strings.ToUpper(c.Template.Lang) + "  [" + c.Template.Name + "] " + c.Template.Description
	}
}

// Match is one candidate accepted by a Scorer.
type Match struct {
	Index int
	Score int
}

// Scorer filters candidates by query. Higher scores are better matches; order
// of the returned slice does not matter.
type Scorer interface {
	Score(query string, candidates []string) []Match
}

// FuzzyScorer matches with sahilm/fuzzy.
type FuzzyScorer struct{}

func (FuzzyScorer) Score(query string, candidates []string) []Match {
	found := fuzzy.Find(query, candidates)
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{Index: m.Index, Score: m.Score}
	}
	return matches
}

// Selector produces the source choices for a query over a catalog.
type Selector struct {
	catalog *Catalog
	scorer  Scorer
}

func NewSelector(catalog *Catalog, scorer Scorer) *Selector {
	if scorer == nil {
		scorer = FuzzyScorer{}
	}
	return &Selector{catalog: catalog, scorer: scorer}
}

// Choices returns the catalog in order for an empty query, otherwise the
// matching templates best-first with ties in catalog order. The URL and
// report entries always come last.
func (s *Selector) Choices(query string) []Choice {
	var choices []Choice

	if strings.TrimSpace(query) == "" {
		for _, d := range s.catalog.Templates {
			choices = append(choices, Choice{Kind: ChoiceTemplate, Template: d})
		}
	} else {
		candidates := make([]string, len(s.catalog.Templates))
		for i, d := range s.catalog.Templates {
			candidates[i] = d.Name + d.Description
		}

		matches := s.scorer.Score(query, candidates)
		slices.SortFunc(matches, func(a, b Match) int { return a.Index - b.Index })
		slices.SortStableFunc(matches, func(a, b Match) int { return b.Score - a.Score })

		for _, m := range matches {
			choices = append(choices, Choice{Kind: ChoiceTemplate, Template: s.catalog.Templates[m.Index], Score: m.Score})
		}
	}

	return append(choices, Choice{Kind: ChoiceURL}, Choice{Kind: ChoiceReport})
}

// Resolve maps a Choice value back to its choice.
func (s *Selector) Resolve(value string) (Choice, bool) {
	switch value {
	case URLChoiceValue:
		return Choice{Kind: ChoiceURL}, true
	case ReportChoiceValue:
		return Choice{Kind: ChoiceReport}, true
	}
	d, ok := s.catalog.Lookup(strings.TrimPrefix(value, "template:"))
	if !ok || !strings.HasPrefix(value, "template:") {
		return Choice{}, false
	}
	return Choice{Kind: ChoiceTemplate, Template: d}, true
}
