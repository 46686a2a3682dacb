package agentschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teemow/formcaller/internal/formschema"
)

// FunctionName is the default name of the generated function.
const FunctionName = "fill_form"

// ErrDuplicateQuestionID is returned when two answerable questions share an id.
var ErrDuplicateQuestionID = errors.New("duplicate question id")

// Kind is the JSON type of a parameter.
type Kind string

const (
	KindString Kind = "string"
	KindArray  Kind = "array"
)

// Parameter is one argument of the generated function.
type Parameter struct {
	// Name is the question's decimal id.
	Name        string
	Description string
	Kind        Kind
	// Enum holds the allowed values, or the allowed item values for arrays.
	Enum     []string
	Required bool
}

// Options customizes the generated function.
type Options struct {
	// Name overrides FunctionName.
	Name string
	// Description overrides the description derived from the form.
	Description string
	// Instructions overrides DefaultInstructions.
	Instructions string
}

func (o Options) name() string {
	if o.Name != "" {
		return o.Name
	}
	return FunctionName
}

func (o Options) description(form formschema.NormalizedForm) string {
	if o.Description != "" {
		return o.Description
	}
	desc := fmt.Sprintf("Fill in the answers collected for the form %q.", form.Title)
	if d := strings.TrimSpace(form.Description); d != "" {
		desc += " " + d
	}
	return desc
}

// Parameters returns one parameter per answerable question in form order.
// Questions of type UNKNOWN or without a valid id are skipped.
func Parameters(form formschema.NormalizedForm) ([]Parameter, error) {
	params := make([]Parameter, 0, len(form.Questions))
	seen := make(map[string]bool, len(form.Questions))

	for _, q := range form.AnswerableQuestions() {
		name := q.ID.String()
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateQuestionID, name)
		}
		seen[name] = true

		p := Parameter{
			Name:        name,
			Description: q.Title,
			Kind:        KindString,
			Required:    q.Required,
		}
		switch q.Type {
		case formschema.TypeRadio:
			p.Enum = uniqueValues(q.DisplayOptions())
		case formschema.TypeCheckbox:
			p.Kind = KindArray
			p.Enum = uniqueValues(q.DisplayOptions())
		}
		params = append(params, p)
	}
	return params, nil
}

// RequiredNames returns the names of the required parameters.
func RequiredNames(params []Parameter) []string {
	names := []string{}
	for _, p := range params {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

func uniqueValues(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
