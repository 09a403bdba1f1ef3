package dsapi

import (
	"bytes"
	"encoding/json"
	"sort"
)

// MetadataRecord is the structured file committed into the registry fork.
// Field order here is the serialized key order; keep it stable, since the
// update workflow promises to rewrite source_commit without perturbing any
// other line of the file.
type MetadataRecord struct {
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	Author           string   `json:"author"`
	Tags             []string `json:"tags"`
	SourceURL        string   `json:"source_url"`
	SourceRepo       string   `json:"source_repo"`
	SourceCommit     string   `json:"source_commit"`
	StripeAccount    string   `json:"stripe_account,omitempty"`

	// Extra carries keys this tool does not interpret.  The registry may
	// annotate a record after submission; those annotations must survive
	// an update round trip rather than being dropped or rejected.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownMetadataKeys mirrors the json tags above.
var knownMetadataKeys = []string{
	"name", "short_description", "author", "tags",
	"source_url", "source_repo", "source_commit", "stripe_account",
}

// EncodeMetadata serializes a record deterministically: two-space indent,
// struct field order, trailing newline.  Extra keys are appended after the
// known ones in sorted order.  Encoding the result of DecodeMetadata
// reproduces the original bytes for files this tool wrote.
//
// Errors:
//
//    - depship-error-serialization --
func EncodeMetadata(rec MetadataRecord) ([]byte, error) {
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, ErrorSerialization("encoding metadata record", err)
	}
	if len(rec.Extra) > 0 {
		keys := make([]string, 0, len(rec.Extra))
		for k := range rec.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b bytes.Buffer
		b.Write(bytes.TrimSuffix(data, []byte("\n}")))
		for _, k := range keys {
			name, err := json.Marshal(k)
			if err != nil {
				return nil, ErrorSerialization("encoding metadata record", err)
			}
			b.WriteString(",\n  ")
			b.Write(name)
			b.WriteString(": ")
			var val bytes.Buffer
			if err := json.Indent(&val, rec.Extra[k], "  ", "  "); err != nil {
				return nil, ErrorSerialization("encoding metadata record", err)
			}
			b.Write(val.Bytes())
		}
		b.WriteString("\n}")
		data = b.Bytes()
	}
	return append(data, '\n'), nil
}

// DecodeMetadata parses a metadata record.  Keys beyond the known set are
// not an error; they land in Extra so EncodeMetadata can write them back.
//
// Errors:
//
//    - depship-error-serialization --
func DecodeMetadata(data []byte) (MetadataRecord, error) {
	var rec MetadataRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return MetadataRecord{}, ErrorSerialization("decoding metadata record", err)
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return MetadataRecord{}, ErrorSerialization("decoding metadata record", err)
	}
	for _, k := range knownMetadataKeys {
		delete(all, k)
	}
	if len(all) > 0 {
		rec.Extra = all
	}
	return rec, nil
}
