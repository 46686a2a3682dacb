package agentschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/teemow/formcaller/internal/formschema"
)

// DefaultInstructions is the system prompt for a voice agent that collects
// form answers during a call.
const DefaultInstructions = `You help people fill in forms over the phone. Ask the questions one at a time and guide the caller through the form.
Bring the conversation back to the form if it drifts off-topic or the caller stops responding.
Speak naturally and warmly, like a human surveyor.
Start by saying hello, introduce yourself and the form, and ask the caller to confirm they want to continue. Tell them the call may be monitored or recorded.
Only submit answers through a function call, once, at the end of the conversation.
If the conversation ends without enough information, do not call the function.`

// Instructions returns the agent prompt followed by the normalized form as
// indented JSON.
func Instructions(form formschema.NormalizedForm, opts Options) (string, error) {
	prompt := DefaultInstructions
	if opts.Instructions != "" {
		prompt = opts.Instructions
	}

	data, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode form: %w", err)
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(prompt))
	fmt.Fprintf(&b, "\n\nCall %s with the answers. Each parameter is named by the question id below.\nAsk the questions in the order of the form below. The schema does not carry that order.\n\n", opts.name())
	b.WriteString("Form:\n")
	b.Write(data)
	b.WriteString("\n")
	return b.String(), nil
}
