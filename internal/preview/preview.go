package preview

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/teemow/formcaller/internal/formschema"
)

// RequiredMarker follows the title of a required question.
const RequiredMarker = "*"

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// Clean strips markup from s and collapses it to a single trimmed line.
func Clean(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	stripped := html.UnescapeString(textSanitizer().Sanitize(s))
	return strings.Join(strings.Fields(stripped), " ")
}

// cleanBlock strips markup but keeps line breaks.
func cleanBlock(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		out = append(out, Clean(line))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func typeLabel(t formschema.QuestionType) string {
	switch t {
	case formschema.TypeText:
		return "text"
	case formschema.TypeRadio:
		return "single choice"
	case formschema.TypeCheckbox:
		return "multiple choice"
	default:
		return "unsupported"
	}
}

func questionTitle(q formschema.NormalizedQuestion) string {
	title := Clean(q.Title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

func requiredSuffix(q formschema.NormalizedQuestion) string {
	if q.Required {
		return " " + RequiredMarker
	}
	return ""
}

// Markdown renders the form as Markdown.
func Markdown(form formschema.NormalizedForm) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", Clean(form.Title))
	if desc := cleanBlock(form.Description); desc != "" {
		fmt.Fprintf(&b, "\n%s\n", desc)
	}

	s := form.Summary()
	fmt.Fprintf(&b, "\n_%d questions, %d required_\n", s.Total, s.Required)

	for i, q := range form.Questions {
		fmt.Fprintf(&b, "\n%d. **%s**%s (%s)", i+1, questionTitle(q), requiredSuffix(q), typeLabel(q.Type))
		if q.ID.Valid() {
			fmt.Fprintf(&b, " `%s`", q.ID)
		}
		b.WriteString("\n")

		bullet := "-"
		if q.Type == formschema.TypeCheckbox {
			bullet = "- [ ]"
		}
		for _, v := range q.DisplayOptions() {
			fmt.Fprintf(&b, "   %s %s\n", bullet, Clean(v))
		}
	}

	if s.Required > 0 {
		fmt.Fprintf(&b, "\n`%s` required\n", RequiredMarker)
	}
	return b.String()
}

// PlainText renders the form as indented plain text.
func PlainText(form formschema.NormalizedForm) string {
	var b strings.Builder

	title := Clean(form.Title)
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))) + "\n")
	if desc := cleanBlock(form.Description); desc != "" {
		b.WriteString(desc + "\n")
	}

	for i, q := range form.Questions {
		fmt.Fprintf(&b, "\n%d. %s%s [%s]\n", i+1, questionTitle(q), requiredSuffix(q), typeLabel(q.Type))
		marker := "( )"
		if q.Type == formschema.TypeCheckbox {
			marker = "[ ]"
		}
		for _, v := range q.DisplayOptions() {
			fmt.Fprintf(&b, "   %s %s\n", marker, Clean(v))
		}
	}
	return b.String()
}
