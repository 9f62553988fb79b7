package server

import "github.com/nvenk/divvy/internal/docstore"

// serializeDoc converts a stored document to its client-facing shape: the
// store-generated identifier is exposed under the stable "id" key alongside
// the document fields. Timestamp fields are already RFC 3339 strings in the
// stored body, so no further conversion is needed. A nil document
// serializes to nil.
func serializeDoc(doc *docstore.Document) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc.Fields)+1)
	for k, v := range doc.Fields {
		out[k] = v
	}
	out["id"] = doc.ID
	return out
}

// serializeDocs converts a document list, yielding an empty (not null) JSON
// array for empty results.
func serializeDocs(docs []docstore.Document) []map[string]any {
	out := make([]map[string]any, len(docs))
	for i := range docs {
		out[i] = serializeDoc(&docs[i])
	}
	return out
}
