// Package preview renders a normalized form as a read-only preview.
//
// Titles, descriptions and option values can contain markup pasted into the
// Forms editor; it is stripped before rendering. Required questions are
// marked with an asterisk and "other" options show as "Other...".
package preview
