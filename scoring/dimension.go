package scoring

import "fmt"

// QuestionRange is an inclusive, 1-based range of question numbers.
type QuestionRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// bounds clamps the range to 1..QuestionCount. ok is false when nothing is left.
func (r QuestionRange) bounds() (start, end int, ok bool) {
	start, end = r.Start, r.End
	if start < 1 {
		start = 1
	}
	if end > QuestionCount {
		end = QuestionCount
	}
	return start, end, start <= end
}

// Len is the number of questions the range covers after clamping.
func (r QuestionRange) Len() int {
	start, end, ok := r.bounds()
	if !ok {
		return 0
	}
	return end - start + 1
}

// Contains reports whether question q falls in the range.
func (r QuestionRange) Contains(q int) bool {
	start, end, ok := r.bounds()
	return ok && q >= start && q <= end
}

func (r QuestionRange) String() string {
	return fmt.Sprintf("Q%d-Q%d", r.Start, r.End)
}

// Dimension is a named block of survey questions.
type Dimension struct {
	Key   string        `json:"key"`
	Name  string        `json:"name"`
	Range QuestionRange `json:"range"`
}

var (
	Knowledge       = Dimension{Key: "financial_knowledge", Name: "Financial Knowledge", Range: QuestionRange{1, 9}}
	DigitalLiteracy = Dimension{Key: "digital_literacy", Name: "Digital Literacy", Range: QuestionRange{10, 18}}
	Behavior        = Dimension{Key: "financial_behavior", Name: "Financial Behavior", Range: QuestionRange{19, 29}}
	DecisionMaking  = Dimension{Key: "decision_making", Name: "Decision Making", Range: QuestionRange{30, 39}}
	Wellbeing       = Dimension{Key: "wellbeing", Name: "Well-being", Range: QuestionRange{40, 48}}

	// AllQuestions spans the whole questionnaire; its score is the overall literacy score.
	AllQuestions = QuestionRange{1, QuestionCount}
)

// Dimensions returns the five questionnaire dimensions in survey order.
func Dimensions() []Dimension {
	return []Dimension{Knowledge, DigitalLiteracy, Behavior, DecisionMaking, Wellbeing}
}

// DimensionOf returns the dimension question q belongs to.
func DimensionOf(q int) (Dimension, bool) {
	for _, d := range Dimensions() {
		if d.Range.Contains(q) {
			return d, true
		}
	}
	return Dimension{}, false
}
