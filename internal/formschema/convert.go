package formschema

import (
	"encoding/json"
	"fmt"

	"google.golang.org/api/forms/v1"
)

// ParseRawForm decodes a forms.get JSON document.
func ParseRawForm(data []byte) (*RawForm, error) {
	var raw RawForm
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode form: %w", err)
	}
	return &raw, nil
}

// FromAPI converts a typed Forms API response into the raw model.
func FromAPI(f *forms.Form) *RawForm {
	if f == nil {
		return nil
	}

	raw := &RawForm{FormID: f.FormId}
	if f.Info != nil {
		raw.Info = &RawInfo{
			Title:       stringPtr(f.Info.Title),
			Description: stringPtr(f.Info.Description),
		}
	}

	raw.Items = make([]RawItem, 0, len(f.Items))
	for _, item := range f.Items {
		if item == nil {
			continue
		}
		raw.Items = append(raw.Items, RawItem{
			ItemID:       item.ItemId,
			Title:        item.Title,
			Description:  item.Description,
			QuestionItem: questionItemFromAPI(item.QuestionItem),
		})
	}
	return raw
}

func questionItemFromAPI(qi *forms.QuestionItem) *RawQuestionItem {
	if qi == nil {
		return nil
	}
	out := &RawQuestionItem{}
	q := qi.Question
	if q == nil {
		return out
	}

	required := q.Required
	out.Question = &RawQuestion{
		QuestionID: q.QuestionId,
		Required:   &required,
	}
	if q.TextQuestion != nil {
		out.Question.TextQuestion = &RawTextQuestion{Paragraph: q.TextQuestion.Paragraph}
	}
	if cq := q.ChoiceQuestion; cq != nil {
		rc := &RawChoiceQuestion{Type: cq.Type}
		for _, o := range cq.Options {
			if o == nil {
				continue
			}
			rc.Options = append(rc.Options, RawOption{Value: o.Value, IsOther: o.IsOther})
		}
		out.Question.ChoiceQuestion = rc
	}
	return out
}

// stringPtr returns nil for the empty string, matching an omitted JSON field.
func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
