package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/warptools/depship/dsapi"
)

// promptMissing fills descriptor fields that were not supplied via flags by
// asking interactively on the app's Reader/Writer.  Fields left blank after
// prompting are caught by Validate, not here.
//
// Errors:
//
//    - depship-error-io -- reading from the input stream failed
func promptMissing(c *cli.Context, d *dsapi.ExtensionDescriptor) error {
	// One buffered reader for the whole exchange; wrapping the stream anew
	// per question would drop buffered input.
	r := bufio.NewReader(c.App.Reader)

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Extension repository name (e.g. my-extension)", &d.RepoName},
		{"Human-readable extension name (e.g. My Extension)", &d.Name},
		{"Short description", &d.ShortDescription},
		{"Author name", &d.Author},
	}
	for _, p := range prompts {
		if *p.dst != "" {
			continue
		}
		line, err := promptLine(c, r, p.label)
		if err != nil {
			return err
		}
		*p.dst = line
	}

	if d.SourceFilePath == "" && d.SourceCode == "" {
		fmt.Fprintf(c.App.Writer, "\nNo extension.js file or code provided. Paste your extension.js code below.\n")
		fmt.Fprintf(c.App.Writer, "When finished, press Ctrl+D on a new line.\n\n")
		code, err := io.ReadAll(r)
		if err != nil {
			return dsapi.ErrorIo("reading pasted source code", "stdin", err)
		}
		// A blank paste falls through to the default stub in stage 1.
		d.SourceCode = strings.TrimSpace(string(code))
	}
	return nil
}

// promptLine asks one question and returns the trimmed answer.
// EOF with no input yields an empty answer rather than an error.
//
// Errors:
//
//    - depship-error-io --
func promptLine(c *cli.Context, r *bufio.Reader, label string) (string, error) {
	fmt.Fprintf(c.App.Writer, "%s: ", label)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", dsapi.ErrorIo("reading prompt answer", "stdin", err)
	}
	return strings.TrimSpace(line), nil
}
