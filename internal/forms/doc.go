// Package forms provides functionality for interacting with the Google Forms API.
//
// The package handles:
//   - Form retrieval via the Google Forms API (forms.get)
//   - Conversion of retrieved forms into the formschema raw model
//   - Listing of the user's forms via the Google Drive API
//
// Example usage:
//
//	client, err := forms.NewClientForAccountWithProvider(ctx, "default", provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	form, err := client.GetNormalizedForm(ctx, "1oS9FDXpeXhnRzCgd_tXjyYXXFhlH5pvDS8RlgoNWkos")
//	if err != nil {
//	    log.Fatal(err)
//	}
package forms
