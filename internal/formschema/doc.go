// Package formschema normalizes Google Forms structures into an ordered,
// schema-ready question list.
//
// The package handles:
//   - Decoding raw forms.get documents into explicit optional-field types
//   - Converting typed Forms API responses (forms/v1) into the same raw model
//   - Normalizing a raw form: defaults, question types, option lists and ids
//
// Normalization is pure and never fails. Anything it cannot interpret is
// surfaced as a question of type UNKNOWN at its original position.
//
// Example usage:
//
//	raw, err := formschema.ParseRawForm(body)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	form := formschema.Normalize(raw)
//	for _, q := range form.Questions {
//	    fmt.Println(q.ID, q.Title, q.Type)
//	}
package formschema
