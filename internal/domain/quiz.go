package domain

// Direction selects which way a quiz question is asked.
type Direction string

const (
	// DirectionZhToEn prompts with the Chinese definition, choices are lemmas.
	DirectionZhToEn Direction = "zh2en"
	// DirectionEnToZh prompts with the lemma, choices are Chinese definitions.
	DirectionEnToZh Direction = "en2zh"
)

// ParseDirection validates a direction string, defaulting to zh2en.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "", string(DirectionZhToEn):
		return DirectionZhToEn, true
	case string(DirectionEnToZh):
		return DirectionEnToZh, true
	default:
		return "", false
	}
}

// ChoicesPerQuestion is the fixed multiple-choice width.
const ChoicesPerQuestion = 4

// Question is one multiple-choice item. Answer indexes into Choices.
type Question struct {
	Lemma   string   `json:"lemma"`
	POS     string   `json:"pos"`
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices"`
	Answer  int      `json:"answer"`
}

// Quiz is a generated quiz round. ID is purely informational so the
// client can label attempts; nothing is persisted server-side.
type Quiz struct {
	ID        string     `json:"id"`
	Direction Direction  `json:"direction"`
	Questions []Question `json:"questions"`
}
