package formschema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/forms/v1"
)

const sampleFormJSON = `{
  "formId": "1oS9FDXpeXhnRzCgd_tXjyYXXFhlH5pvDS8RlgoNWkos",
  "info": {"title": "Event registration", "documentTitle": "Registration"},
  "items": [
    {
      "itemId": "3d3a2f1b",
      "title": "Your name",
      "questionItem": {"question": {"questionId": "7cb5c41a", "required": true, "textQuestion": {}}}
    },
    {
      "itemId": "0a1b2c3d",
      "title": "About the event",
      "textItem": {}
    },
    {
      "itemId": "5e6f7a8b",
      "title": "Which days will you attend?",
      "questionItem": {"question": {"questionId": "1a", "choiceQuestion": {
        "type": "CHECKBOX",
        "options": [{"value": "Day 1"}, {"value": "Day 2"}, {"isOther": true}]
      }}}
    },
    {
      "itemId": "9c0d1e2f",
      "title": "How satisfied are you?",
      "questionItem": {"question": {"questionId": "2b", "scaleQuestion": {"low": 1, "high": 5}}}
    }
  ]
}`

func TestParseRawForm(t *testing.T) {
	raw, err := ParseRawForm([]byte(sampleFormJSON))
	require.NoError(t, err)

	form := Normalize(raw)
	want := NormalizedForm{
		FormID:      "1oS9FDXpeXhnRzCgd_tXjyYXXFhlH5pvDS8RlgoNWkos",
		Title:       "Event registration",
		Description: "",
		Questions: []NormalizedQuestion{
			{ID: NewQuestionID(2092287002), ItemID: "3d3a2f1b", Title: "Your name", Required: true, Type: TypeText, Options: []NormalizedOption{}},
			{ItemID: "0a1b2c3d", Title: "About the event", Type: TypeUnknown, Options: []NormalizedOption{}},
			{ID: NewQuestionID(26), ItemID: "5e6f7a8b", Title: "Which days will you attend?", Type: TypeCheckbox, Options: []NormalizedOption{
				{Value: "Day 1"}, {Value: "Day 2"}, {IsOther: true},
			}},
			{ID: NewQuestionID(43), ItemID: "9c0d1e2f", Title: "How satisfied are you?", Type: TypeUnknown, Options: []NormalizedOption{}},
		},
	}
	if diff := cmp.Diff(want, form, cmp.AllowUnexported(QuestionID{})); diff != "" {
		t.Errorf("Normalize(ParseRawForm()) mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRawForm_InvalidJSON(t *testing.T) {
	_, err := ParseRawForm([]byte(`{"items": [`))
	assert.Error(t, err)
}

func TestFromAPI(t *testing.T) {
	apiForm := &forms.Form{
		FormId: "abc",
		Info:   &forms.Info{Title: "Feedback", Description: "Quick survey"},
		Items: []*forms.Item{
			{
				ItemId: "i1",
				Title:  "Rating",
				QuestionItem: &forms.QuestionItem{Question: &forms.Question{
					QuestionId: "a",
					Required:   true,
					ChoiceQuestion: &forms.ChoiceQuestion{
						Type:    "RADIO",
						Options: []*forms.Option{{Value: "Good"}, nil, {IsOther: true}},
					},
				}},
			},
			nil,
			{ItemId: "i2", Title: "Break", PageBreakItem: &forms.PageBreakItem{}},
			{
				ItemId: "i3",
				Title:  "Comments",
				QuestionItem: &forms.QuestionItem{Question: &forms.Question{
					QuestionId:   "b",
					TextQuestion: &forms.TextQuestion{Paragraph: true},
				}},
			},
		},
	}

	got := Normalize(FromAPI(apiForm))
	want := NormalizedForm{
		FormID:      "abc",
		Title:       "Feedback",
		Description: "Quick survey",
		Questions: []NormalizedQuestion{
			{ID: NewQuestionID(10), ItemID: "i1", Title: "Rating", Required: true, Type: TypeRadio, Options: []NormalizedOption{
				{Value: "Good"}, {IsOther: true},
			}},
			{ItemID: "i2", Title: "Break", Type: TypeUnknown, Options: []NormalizedOption{}},
			{ID: NewQuestionID(11), ItemID: "i3", Title: "Comments", Type: TypeText, Options: []NormalizedOption{}},
		},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(QuestionID{})); diff != "" {
		t.Errorf("Normalize(FromAPI()) mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAPI_Nil(t *testing.T) {
	assert.Nil(t, FromAPI(nil))
	assert.Equal(t, UntitledForm, Normalize(FromAPI(nil)).Title)
}
