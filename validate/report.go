package validate

import "time"

// Result is the outcome of evaluating a single rule. A failed rule lists
// its violations and repeats the rule's suggestion; a rule whose
// implementation broke comes back as an error-severity result instead of
// failing the whole run.
type Result struct {
	RuleID     string   `json:"rule_id"`
	RuleName   string   `json:"rule_name"`
	RuleType   RuleType `json:"rule_type"`
	Severity   Severity `json:"severity"`
	Valid      bool     `json:"is_valid"`
	Violations []string `json:"violations,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Report collects the results of one evaluation run, one entry per rule
// evaluated, in engine order.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Results     []*Result `json:"results"`
}

// Valid reports if every rule passed.
func (r *Report) Valid() bool {
	for _, res := range r.Results {
		if !res.Valid {
			return false
		}
	}
	return true
}

// Failures returns the results of rules that did not pass, in engine
// order.
func (r *Report) Failures() []*Result {
	var out []*Result
	for _, res := range r.Results {
		if !res.Valid {
			out = append(out, res)
		}
	}
	return out
}

// CountBySeverity tallies failed results per severity.
func (r *Report) CountBySeverity() map[Severity]int {
	out := make(map[Severity]int)
	for _, res := range r.Results {
		if !res.Valid {
			out[res.Severity]++
		}
	}
	return out
}
