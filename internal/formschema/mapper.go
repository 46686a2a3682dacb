package formschema

// Choice types reported by the Forms API that map onto a normalized type.
const (
	choiceTypeRadio    = "RADIO"
	choiceTypeCheckbox = "CHECKBOX"
)

// Normalize maps a raw form onto its normalized question list. It never
// fails: a nil form yields an untitled form without questions, and items it
// cannot interpret become UNKNOWN questions at their original position.
func Normalize(raw *RawForm) NormalizedForm {
	form := NormalizedForm{
		Title:     UntitledForm,
		Questions: []NormalizedQuestion{},
	}
	if raw == nil {
		return form
	}

	var info RawInfo
	if raw.Info != nil {
		info = *raw.Info
	}

	form.FormID = raw.FormID
	form.Title = firstNonEmpty(UntitledForm, raw.Title, info.Title)
	form.Description = firstNonEmpty("", raw.Description, info.Description)

	for _, item := range raw.Items {
		form.Questions = append(form.Questions, normalizeItem(item))
	}
	return form
}

func normalizeItem(item RawItem) NormalizedQuestion {
	q := NormalizedQuestion{
		ItemID:  item.ItemID,
		Title:   item.Title,
		Type:    TypeUnknown,
		Options: []NormalizedOption{},
	}
	if item.QuestionItem == nil || item.QuestionItem.Question == nil {
		return q
	}

	raw := item.QuestionItem.Question
	q.ID = ParseQuestionID(raw.QuestionID)
	if raw.Required != nil {
		q.Required = *raw.Required
	}

	switch {
	case raw.TextQuestion != nil:
		q.Type = TypeText
	case raw.ChoiceQuestion != nil:
		q.Type = choiceType(raw.ChoiceQuestion.Type)
		for _, o := range raw.ChoiceQuestion.Options {
			q.Options = append(q.Options, NormalizedOption{Value: o.Value, IsOther: o.IsOther})
		}
	}
	return q
}

// choiceType resolves a Forms API choice type. DROP_DOWN and unrecognized
// types are UNKNOWN.
func choiceType(t string) QuestionType {
	switch t {
	case choiceTypeRadio:
		return TypeRadio
	case choiceTypeCheckbox:
		return TypeCheckbox
	default:
		return TypeUnknown
	}
}

// firstNonEmpty returns the first non-nil, non-empty candidate, or def.
func firstNonEmpty(def string, candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}
	return def
}
