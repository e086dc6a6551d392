package reports

// LatestReviewUpdatedAtRule is the name of the baseline decision rule.
const LatestReviewUpdatedAtRule = "latestReviewUpdatedAtRules"

// Decision is the disposition assigned to a report.
type Decision struct {
	Closed bool
	Rule   string
}

// Rule is a named, side-effect free policy. Applies selects the rule and
// Closed computes the status once selected.
type Rule struct {
	Name    string
	Applies func(r *Report) bool
	Closed  func(r *Report) bool
}

// latestReviewUpdatedAt keeps a report open while it has filings and no
// terminating review. Reviews are not recorded yet, so any report with a
// filing stays open.
var latestReviewUpdatedAt = Rule{
	Name:    LatestReviewUpdatedAtRule,
	Applies: func(*Report) bool { return true },
	Closed:  func(r *Report) bool { return r.LatestFiling() == nil },
}

// Engine evaluates rules in a fixed priority order.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine that tries rules in the given order and falls
// back to the baseline rule.
func NewEngine(rules ...Rule) *Engine {
	ordered := make([]Rule, 0, len(rules)+1)
	for _, r := range rules {
		if r.Applies == nil || r.Closed == nil || r.Name == "" {
			continue
		}
		ordered = append(ordered, r)
	}
	ordered = append(ordered, latestReviewUpdatedAt)
	return &Engine{rules: ordered}
}

// Decide returns the decision of the first applicable rule.
func (e *Engine) Decide(r *Report) Decision {
	for _, rule := range e.rules {
		if rule.Applies(r) {
			return Decision{Closed: rule.Closed(r), Rule: rule.Name}
		}
	}
	return Decision{Closed: latestReviewUpdatedAt.Closed(r), Rule: latestReviewUpdatedAt.Name}
}

// Rules lists the rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}
