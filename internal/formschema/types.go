package formschema

// RawForm mirrors the subset of a Forms API forms.get document that the
// mapper reads. Absent fields stay nil; defaults are applied by Normalize.
type RawForm struct {
	FormID      string    `json:"formId,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Info        *RawInfo  `json:"info,omitempty"`
	Items       []RawItem `json:"items,omitempty"`
}

// RawInfo holds the form's info block.
type RawInfo struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// RawItem is a single form item. Only question items carry QuestionItem.
type RawItem struct {
	ItemID       string           `json:"itemId,omitempty"`
	Title        string           `json:"title,omitempty"`
	Description  string           `json:"description,omitempty"`
	QuestionItem *RawQuestionItem `json:"questionItem,omitempty"`
}

// RawQuestionItem wraps the question of a question item.
type RawQuestionItem struct {
	Question *RawQuestion `json:"question,omitempty"`
}

// RawQuestion is a question as returned by the Forms API. QuestionID is a
// hexadecimal string.
type RawQuestion struct {
	QuestionID     string             `json:"questionId,omitempty"`
	Required       *bool              `json:"required,omitempty"`
	TextQuestion   *RawTextQuestion   `json:"textQuestion,omitempty"`
	ChoiceQuestion *RawChoiceQuestion `json:"choiceQuestion,omitempty"`
}

// RawTextQuestion marks a free text question.
type RawTextQuestion struct {
	Paragraph bool `json:"paragraph,omitempty"`
}

// RawChoiceQuestion is a choice question with its declared type.
type RawChoiceQuestion struct {
	Type    string      `json:"type,omitempty"`
	Options []RawOption `json:"options,omitempty"`
}

// RawOption is a single choice option.
type RawOption struct {
	Value   string `json:"value,omitempty"`
	IsOther bool   `json:"isOther,omitempty"`
}

// QuestionType is the normalized kind of a question.
type QuestionType string

const (
	TypeText     QuestionType = "TEXT"
	TypeRadio    QuestionType = "RADIO"
	TypeCheckbox QuestionType = "CHECKBOX"
	TypeUnknown  QuestionType = "UNKNOWN"
)

// UntitledForm is the title used when a form has none.
const UntitledForm = "Untitled Form"

// OtherDisplayValue is shown in place of an "other" option's value.
const OtherDisplayValue = "Other..."

// NormalizedOption is a choice option after normalization.
type NormalizedOption struct {
	Value   string `json:"value" yaml:"value"`
	IsOther bool   `json:"isOther" yaml:"isOther"`
}

// DisplayValue returns the text shown for the option.
func (o NormalizedOption) DisplayValue() string {
	if o.IsOther {
		return OtherDisplayValue
	}
	return o.Value
}

// NormalizedQuestion is one entry of the normalized question list.
type NormalizedQuestion struct {
	ID       QuestionID         `json:"id" yaml:"id"`
	ItemID   string             `json:"itemId,omitempty" yaml:"itemId,omitempty"`
	Title    string             `json:"title" yaml:"title"`
	Required bool               `json:"required" yaml:"required"`
	Type     QuestionType       `json:"type" yaml:"type"`
	Options  []NormalizedOption `json:"options" yaml:"options"`
}

// DisplayOptions returns the display values of the question's options.
func (q NormalizedQuestion) DisplayOptions() []string {
	values := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		values = append(values, o.DisplayValue())
	}
	return values
}

// Answerable reports whether an agent can be asked for this question.
func (q NormalizedQuestion) Answerable() bool {
	return q.ID.Valid() && q.Type != TypeUnknown
}

// NormalizedForm is the display and schema ready form.
type NormalizedForm struct {
	FormID      string               `json:"formId,omitempty" yaml:"formId,omitempty"`
	Title       string               `json:"title" yaml:"title"`
	Description string               `json:"description" yaml:"description"`
	Questions   []NormalizedQuestion `json:"questions" yaml:"questions"`
}

// AnswerableQuestions returns the questions with a valid id and a known type,
// in form order.
func (f NormalizedForm) AnswerableQuestions() []NormalizedQuestion {
	var out []NormalizedQuestion
	for _, q := range f.Questions {
		if q.Answerable() {
			out = append(out, q)
		}
	}
	return out
}

// Summary counts questions by type.
type Summary struct {
	Total    int `json:"total" yaml:"total"`
	Required int `json:"required" yaml:"required"`
	Unknown  int `json:"unknown" yaml:"unknown"`
}

// Summary returns question counts for the form.
func (f NormalizedForm) Summary() Summary {
	s := Summary{Total: len(f.Questions)}
	for _, q := range f.Questions {
		if q.Required {
			s.Required++
		}
		if q.Type == TypeUnknown {
			s.Unknown++
		}
	}
	return s
}
