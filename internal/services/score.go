package services

import "errors"

// AnswerCount is the number of items in the DASS-21 questionnaire.
const AnswerCount = 21

// MaxAnswer is the highest valid response value for a single item.
const MaxAnswer = 3

// Severity labels used by all three subscales.
const (
	SeverityNormal          = "Normal"
	SeverityMild            = "Mild"
	SeverityModerate        = "Moderate"
	SeveritySevere          = "Severe"
	SeverityExtremelySevere = "Extremely Severe"
)

// ErrInvalidAnswers is returned when the answers slice is not exactly 21
// integers in the range 0..3.
var ErrInvalidAnswers = errors.New("answers must be 21 integers each 0-3")

// Item numbers per subscale, 1-based as published in the DASS manual.
// The three sets partition 1..21.
var (
	depressionItems = []int{3, 5, 10, 13, 16, 17, 21}
	anxietyItems    = []int{2, 4, 7, 9, 15, 19, 20}
	stressItems     = []int{1, 6, 8, 11, 12, 14, 18}
)

// SeverityBand maps an inclusive score range to a severity label.
type SeverityBand struct {
	Low   int
	High  int
	Label string
}

// Severity thresholds for DASS-21 subscale sums (7 items, no doubling).
// Bands are contiguous and ordered; the upper bound of the last band follows
// the published tables even though a 7-item sum cannot exceed 21.
var (
	DepressionBands = []SeverityBand{
		{0, 4, SeverityNormal},
		{5, 6, SeverityMild},
		{7, 10, SeverityModerate},
		{11, 13, SeveritySevere},
		{14, 42, SeverityExtremelySevere},
	}
	AnxietyBands = []SeverityBand{
		{0, 3, SeverityNormal},
		{4, 5, SeverityMild},
		{6, 7, SeverityModerate},
		{8, 9, SeveritySevere},
		{10, 42, SeverityExtremelySevere},
	}
	StressBands = []SeverityBand{
		{0, 7, SeverityNormal},
		{8, 9, SeverityMild},
		{10, 12, SeverityModerate},
		{13, 16, SeveritySevere},
		{17, 42, SeverityExtremelySevere},
	}
)

// ScoreResult carries the computed subscale scores and severity labels.
// AssessmentID is assigned by the caller after persistence, never here.
type ScoreResult struct {
	DepressionScore    int    `json:"depression_score"`
	AnxietyScore       int    `json:"anxiety_score"`
	StressScore        int    `json:"stress_score"`
	DepressionSeverity string `json:"depression_severity"`
	AnxietySeverity    string `json:"anxiety_severity"`
	StressSeverity     string `json:"stress_severity"`
	TotalScore         int    `json:"total_score"`
	AssessmentID       string `json:"assessment_id,omitempty"`
}

// ScoreDASS21 validates and scores a completed DASS-21 questionnaire.
// It is pure and deterministic: no state, no I/O, no failure modes beyond
// ErrInvalidAnswers.
func ScoreDASS21(answers []int) (*ScoreResult, error) {
	if len(answers) != AnswerCount {
		return nil, ErrInvalidAnswers
	}
	for _, a := range answers {
		if a < 0 || a > MaxAnswer {
			return nil, ErrInvalidAnswers
		}
	}

	dep := sumItems(answers, depressionItems)
	anx := sumItems(answers, anxietyItems)
	str := sumItems(answers, stressItems)

	// Total is the full-array sum, kept independent of the subscale sums on
	// purpose: it must stay correct even if the item sets ever stop being a
	// partition of the questionnaire.
	total := 0
	for _, a := range answers {
		total += a
	}

	return &ScoreResult{
		DepressionScore:    dep,
		AnxietyScore:       anx,
		StressScore:        str,
		DepressionSeverity: SeverityFor(dep, DepressionBands),
		AnxietySeverity:    SeverityFor(anx, AnxietyBands),
		StressSeverity:     SeverityFor(str, StressBands),
		TotalScore:         total,
	}, nil
}

// SeverityFor returns the label of the first band whose inclusive range
// contains score. Bands are contiguous by construction, so the scan always
// matches for valid scores; the last band is the defined fallback.
func SeverityFor(score int, bands []SeverityBand) string {
	for _, b := range bands {
		if score >= b.Low && score <= b.High {
			return b.Label
		}
	}
	return bands[len(bands)-1].Label
}

func sumItems(answers []int, items []int) int {
	s := 0
	for _, n := range items {
		s += answers[n-1]
	}
	return s
}
