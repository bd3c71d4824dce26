// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Scorer rates the similarity of two strings on a 0-100 scale.
type Scorer func(a, b string) int

// DefaultScorer is the registry key selected when the config names none.
const DefaultScorer = "token_set"

// scorers maps config names to similarity implementations. token_set is
// the calibrated default: the acceptance cutoffs were tuned against it,
// and the alternatives are offered for experimentation at the caller's
// own calibration risk.
var scorers = map[string]Scorer{
	"token_set":     func(a, b string) int { return fuzzy.TokenSetRatio(a, b) },
	"token_sort":    func(a, b string) int { return fuzzy.TokenSortRatio(a, b) },
	"ratio":         func(a, b string) int { return fuzzy.Ratio(a, b) },
	"jaro_winkler":  metricScorer(metrics.NewJaroWinkler()),
	"levenshtein":   metricScorer(metrics.NewLevenshtein()),
	"sorensen_dice": metricScorer(metrics.NewSorensenDice()),
}

// metricScorer adapts a strutil metric's 0-1 similarity to the 0-100
// scale the cutoffs are expressed in.
func metricScorer(m strutil.StringMetric) Scorer {
	return func(a, b string) int {
		return int(math.Round(strutil.Similarity(a, b, m) * 100))
	}
}

// LookupScorer resolves a scorer by its config name. The empty name
// selects the default.
func LookupScorer(name string) (Scorer, error) {
	if name == "" {
		name = DefaultScorer
	}
	s, ok := scorers[name]
	if !ok {
		return nil, fmt.Errorf("unknown scorer %q (valid: %s)", name, strings.Join(ScorerNames(), ", "))
	}
	return s, nil
}

// ScorerNames lists the registered scorer names, sorted.
func ScorerNames() []string {
	names := make([]string, 0, len(scorers))
	for name := range scorers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
