package dsapi

import (
	"strings"
)

// Stage is the ordinal of one unit of the submit workflow.
// Zero means no stage has completed yet.
type Stage int

// DefaultSourceCode is materialized when the user supplies neither a source
// file nor inline code.  It is a minimal loadable extension.
const DefaultSourceCode = `export default {
  onload: () => { console.log("Extension loaded!"); },
  onunload: () => { console.log("Extension unloaded!"); }
};`

// ExtensionDescriptor is the user-supplied identity of the extension being
// published.  It is assembled once (from flags, falling back to interactive
// prompts) and treated as immutable for the duration of a run.
type ExtensionDescriptor struct {
	RepoName         string
	Name             string
	ShortDescription string
	Author           string
	Tags             []string
	StripeAccount    string // optional
	SourceFilePath   string // mutually exclusive with SourceCode; may both be empty
	SourceCode       string
}

// Validate reports whether the descriptor carries every required field.
// It does not touch the filesystem; SourceFilePath existence is checked by
// the stage that consumes it.
//
// Errors:
//
//    - depship-error-invalid -- when a required field is blank
func (d ExtensionDescriptor) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"extension-repo-name", d.RepoName},
		{"extension-name", d.Name},
		{"extension-short-description", d.ShortDescription},
		{"extension-author", d.Author},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return ErrorInvalid(r.field+" is required",
				[2]string{"field", r.field})
		}
	}
	return nil
}

// HostedDescription is the description line given to the hosting platform
// when the extension repository is created.
func (d ExtensionDescriptor) HostedDescription() string {
	return d.ShortDescription + " (by " + d.Author + ")"
}

// ParseTags splits a comma-separated tag string into a list.
// Whitespace around each tag is trimmed, order is preserved, and empty
// entries are dropped.  An empty input yields an empty (non-nil) list so
// that serialization produces `[]` rather than `null`.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
