package dsapi

import (
	"encoding/json"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func sampleRecord() MetadataRecord {
	return MetadataRecord{
		Name:             "My Extension",
		ShortDescription: "Does a thing",
		Author:           "Someone",
		Tags:             []string{"test", "print"},
		SourceURL:        "https://github.com/someone/my-extension",
		SourceRepo:       "https://github.com/someone/my-extension.git",
		SourceCommit:     "abc123",
	}
}

func TestMetadataEncodeDecode(t *testing.T) {
	t.Run("round-trip-is-byte-stable", func(t *testing.T) {
		first, err := EncodeMetadata(sampleRecord())
		qt.Assert(t, err, qt.IsNil)
		rec, err := DecodeMetadata(first)
		qt.Assert(t, err, qt.IsNil)
		second, err := EncodeMetadata(rec)
		qt.Assert(t, err, qt.IsNil)
		qt.Check(t, string(second), qt.Equals, string(first))
	})
	t.Run("key-order-is-stable", func(t *testing.T) {
		data, err := EncodeMetadata(sampleRecord())
		qt.Assert(t, err, qt.IsNil)
		keys := []string{}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "\"") && strings.Contains(line, "\":") {
				keys = append(keys, line[1:strings.Index(line[1:], "\"")+1])
			}
		}
		qt.Check(t, keys, qt.DeepEquals, []string{
			"name", "short_description", "author", "tags",
			"source_url", "source_repo", "source_commit",
		})
	})
	t.Run("stripe-account-omitted-when-blank", func(t *testing.T) {
		data, err := EncodeMetadata(sampleRecord())
		qt.Assert(t, err, qt.IsNil)
		qt.Check(t, strings.Contains(string(data), "stripe_account"), qt.IsFalse)

		rec := sampleRecord()
		rec.StripeAccount = "acct_123"
		data, err = EncodeMetadata(rec)
		qt.Assert(t, err, qt.IsNil)
		qt.Check(t, strings.Contains(string(data), "\"stripe_account\": \"acct_123\""), qt.IsTrue)
	})
	t.Run("nil-tags-serialize-as-empty-array", func(t *testing.T) {
		rec := sampleRecord()
		rec.Tags = nil
		data, err := EncodeMetadata(rec)
		qt.Assert(t, err, qt.IsNil)
		qt.Check(t, strings.Contains(string(data), "\"tags\": []"), qt.IsTrue)
	})
	t.Run("garbage-fails-to-decode", func(t *testing.T) {
		_, err := DecodeMetadata([]byte("{nope"))
		qt.Check(t, err, qt.Not(qt.IsNil))
	})
	t.Run("unknown-keys-decode-into-extra", func(t *testing.T) {
		data := []byte(`{
  "name": "My Extension",
  "short_description": "Does a thing",
  "author": "Someone",
  "tags": [],
  "source_url": "https://github.com/someone/my-extension",
  "source_repo": "https://github.com/someone/my-extension.git",
  "source_commit": "abc123",
  "featured": true,
  "review": {
    "state": "approved"
  }
}
`)
		rec, err := DecodeMetadata(data)
		qt.Assert(t, err, qt.IsNil)
		qt.Check(t, rec.Name, qt.Equals, "My Extension")
		qt.Check(t, len(rec.Extra), qt.Equals, 2)
		qt.Check(t, string(rec.Extra["featured"]), qt.Equals, "true")
	})
	t.Run("unknown-keys-are-written-back", func(t *testing.T) {
		rec := sampleRecord()
		rec.Extra = map[string]json.RawMessage{
			"featured": json.RawMessage(`true`),
			"review":   json.RawMessage(`{"state": "approved"}`),
		}
		first, err := EncodeMetadata(rec)
		qt.Assert(t, err, qt.IsNil)
		qt.Check(t, strings.Contains(string(first), "\"featured\": true"), qt.IsTrue)
		qt.Check(t, strings.Contains(string(first), "\"state\": \"approved\""), qt.IsTrue)

		parsed, err := DecodeMetadata(first)
		qt.Assert(t, err, qt.IsNil)
		second, err := EncodeMetadata(parsed)
		qt.Assert(t, err, qt.IsNil)
		qt.Check(t, string(second), qt.Equals, string(first))
	})
}

// The update workflow's contract: after rewriting, only the source_commit
// line differs; everything else is byte-preserved with original line order.
func TestMetadataCommitRewritePreservesEverythingElse(t *testing.T) {
	rec := sampleRecord()
	rec.StripeAccount = "acct_123"
	before, err := EncodeMetadata(rec)
	qt.Assert(t, err, qt.IsNil)

	parsed, err := DecodeMetadata(before)
	qt.Assert(t, err, qt.IsNil)
	parsed.SourceCommit = "def456"
	after, err := EncodeMetadata(parsed)
	qt.Assert(t, err, qt.IsNil)

	beforeLines := strings.Split(string(before), "\n")
	afterLines := strings.Split(string(after), "\n")
	qt.Assert(t, len(afterLines), qt.Equals, len(beforeLines))
	for i := range beforeLines {
		if strings.Contains(beforeLines[i], "source_commit") {
			qt.Check(t, strings.Contains(afterLines[i], "\"def456\""), qt.IsTrue)
			continue
		}
		qt.Check(t, afterLines[i], qt.Equals, beforeLines[i])
	}
}
