package analytics

type recommendationRule struct {
	applies func(SubScores) bool
	message string
}

// Evaluated in order; each triggered rule contributes one line.
var recommendationRules = []recommendationRule{
	{
		applies: func(s SubScores) bool { return s.Speed < 60 },
		message: "First replies are slow: assign an on-duty responder and prepare reply templates for frequent topics.",
	},
	{
		applies: func(s SubScores) bool { return s.Backlog < 65 },
		message: "The open backlog is high: schedule a dedicated session to clear or redistribute open requests.",
	},
	{
		applies: func(s SubScores) bool { return s.Stale < 70 },
		message: "Too many new requests wait longer than 3 days: review untouched requests every day.",
	},
	{
		applies: func(s SubScores) bool { return s.Closure < 70 },
		message: "The closure rate is low: set a weekly target for closing answered requests.",
	},
	{
		applies: func(s SubScores) bool { return s.Duration < 65 },
		message: "Requests stay open for a long time: run a root-cause analysis on the longest-running ones.",
	},
}

const (
	maintainRecommendation = "Performance is excellent: keep the current workflow and keep monitoring the indicators."
	noDataRecommendation   = "Not enough data for specific advice yet: widen the date range or collect more requests."
)

// rotatingNotes are cosmetic; the seed picks one per report.
var rotatingNotes = [...]string{
	"Closure and backlog carry the largest weights, so clearing open requests moves the score fastest.",
	"Every figure is recomputed from the full record set on each refresh.",
	"A request counts as stale when it is still New more than three days after submission.",
}

// Recommend turns a score into ordered advice. When total is zero only the
// no-data line is produced. The last line is always a rotating note picked
// by seed, which never affects the score.
func Recommend(score Score, total int, seed int) []string {
	var lines []string
	if total > 0 {
		for _, rule := range recommendationRules {
			if rule.applies(score.SubScores) {
				lines = append(lines, rule.message)
			}
		}
		if len(lines) == 0 && score.Value >= 85 {
			lines = append(lines, maintainRecommendation)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, noDataRecommendation)
	}
	return append(lines, RotatingNote(seed))
}

// RotatingNote returns the explanatory sentence for seed.
func RotatingNote(seed int) string {
	n := len(rotatingNotes)
	return rotatingNotes[((seed%n)+n)%n]
}
