package wikicollect

import (
	"context"
	"encoding/json"
	"errors"
	"io"
)

// PageRecord is one line of an NDJSON artifact.
type PageRecord struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewPageRecord builds the record written for a fetched page.
func NewPageRecord(page *Page) *PageRecord {
	return &PageRecord{Title: page.Title, Content: page.Body}
}

// Artifact describes a committed NDJSON file for one search term.
type Artifact struct {
	SearchTerm  string
	Path        string
	Records     int
	ContentHash string
}

// ArtifactStore creates write-once NDJSON artifacts keyed by search term.
type ArtifactStore interface {
	// Path returns the final location of the artifact for term.
	Path(term string) string

	// Exists reports whether the artifact for term has been committed.
	Exists(term string) (bool, error)

	// Create opens a new artifact for term.
	// Returns EEXISTS if the artifact already exists.
	Create(ctx context.Context, term string) (ArtifactWriter, error)
}

// ArtifactWriter streams records into an artifact.
// Records only become visible at Path after Commit; Abort discards them.
// Abort after Commit is a no-op, so callers may always defer Abort.
type ArtifactWriter interface {
	Write(rec *PageRecord) error
	Commit() (*Artifact, error)
	Abort() error
}

// RecordEncoder writes PageRecords as newline-delimited JSON.
type RecordEncoder struct {
	enc *json.Encoder
}

// NewRecordEncoder returns an encoder writing to w.
func NewRecordEncoder(w io.Writer) *RecordEncoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &RecordEncoder{enc: enc}
}

// Encode writes rec as one JSON object followed by a newline.
func (e *RecordEncoder) Encode(rec *PageRecord) error {
	return e.enc.Encode(rec)
}

// ReadRecords decodes every NDJSON record from r.
// Returns EINVALID if a record cannot be decoded.
func ReadRecords(r io.Reader) ([]*PageRecord, error) {
	dec := json.NewDecoder(r)
	var records []*PageRecord
	for {
		var rec PageRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, WrapError(EINVALID, err, "decode record %d", len(records)+1)
		}
		records = append(records, &rec)
	}
}
