package compare

import (
	"sort"

	json "github.com/goccy/go-json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

// comparisonDocument is the exported JSON shape: the comparison set plus
// the alternatives ranked longest runway first, final balance breaking ties.
type comparisonDocument struct {
	*ComparisonSet
	Ranking []string `json:"ranking"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := comparisonDocument{ComparisonSet: compSet, Ranking: rankAlternatives(compSet.AlternativeResults)}

	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func rankAlternatives(alts []ComparisonResult) []string {
	ranked := make([]ComparisonResult, len(alts))
	copy(ranked, alts)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RunwayYears != ranked[j].RunwayYears {
			return ranked[i].RunwayYears > ranked[j].RunwayYears
		}
		return ranked[i].FinalBalance.GreaterThan(ranked[j].FinalBalance)
	})
	names := make([]string, 0, len(ranked))
	for _, r := range ranked {
		names = append(names, r.ScenarioName)
	}
	return names
}
