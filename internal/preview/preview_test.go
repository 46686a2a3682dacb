package preview

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/teemow/formcaller/internal/formschema"
)

func sampleForm() formschema.NormalizedForm {
	return formschema.NormalizedForm{
		FormID:      "1FAIpQLSf",
		Title:       "<b>Customer</b> Survey",
		Description: "Tell us <i>more</i>\nabout you",
		Questions: []formschema.NormalizedQuestion{
			{
				ID:       formschema.NewQuestionID(11),
				Title:    "Name",
				Required: true,
				Type:     formschema.TypeText,
				Options:  []formschema.NormalizedOption{},
			},
			{
				ID:    formschema.NewQuestionID(12),
				Title: "Color",
				Type:  formschema.TypeRadio,
				Options: []formschema.NormalizedOption{
					{Value: "Red"},
					{Value: "", IsOther: true},
				},
			},
			{
				ID:       formschema.NewQuestionID(13),
				Title:    "Toppings",
				Required: true,
				Type:     formschema.TypeCheckbox,
				Options: []formschema.NormalizedOption{
					{Value: "Cheese"},
					{Value: "Ham &amp; <em>Pineapple</em>"},
				},
			},
			{
				Title:   "Section",
				Type:    formschema.TypeUnknown,
				Options: []formschema.NormalizedOption{},
			},
		},
	}
}

func TestMarkdown(t *testing.T) {
	want := "# Customer Survey\n" +
		"\nTell us more\nabout you\n" +
		"\n_4 questions, 2 required_\n" +
		"\n1. **Name** * (text) `11`\n" +
		"\n2. **Color** (single choice) `12`\n" +
		"   - Red\n" +
		"   - Other...\n" +
		"\n3. **Toppings** * (multiple choice) `13`\n" +
		"   - [ ] Cheese\n" +
		"   - [ ] Ham & Pineapple\n" +
		"\n4. **Section** (unsupported)\n" +
		"\n`*` required\n"

	if diff := cmp.Diff(want, Markdown(sampleForm())); diff != "" {
		t.Errorf("Markdown() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainText(t *testing.T) {
	want := "Customer Survey\n" +
		"===============\n" +
		"Tell us more\nabout you\n" +
		"\n1. Name * [text]\n" +
		"\n2. Color [single choice]\n" +
		"   ( ) Red\n" +
		"   ( ) Other...\n" +
		"\n3. Toppings * [multiple choice]\n" +
		"   [ ] Cheese\n" +
		"   [ ] Ham & Pineapple\n" +
		"\n4. Section [unsupported]\n"

	if diff := cmp.Diff(want, PlainText(sampleForm())); diff != "" {
		t.Errorf("PlainText() mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdown_EmptyForm(t *testing.T) {
	form := formschema.Normalize(nil)

	want := "# Untitled Form\n\n_0 questions, 0 required_\n"
	if diff := cmp.Diff(want, Markdown(form)); diff != "" {
		t.Errorf("Markdown() mismatch (-want +got):\n%s", diff)
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Favourite colour", want: "Favourite colour"},
		{name: "tags", input: "<p>Pick <strong>one</strong></p>", want: "Pick one"},
		{name: "script dropped", input: "<script>alert(1)</script>Name", want: "Name"},
		{name: "entities", input: "Tom &amp; Jerry", want: "Tom & Jerry"},
		{name: "whitespace", input: "  a \t b  ", want: "a b"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
