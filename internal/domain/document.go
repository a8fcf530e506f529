package domain

// DocumentKind names the slot an uploaded file fills. It becomes part of the
// stored filename.
type DocumentKind string

const (
	DocumentKindDocument DocumentKind = "Document"
	DocumentKindOther    DocumentKind = "Other"
)

// DocumentFieldName is the multipart field carrying the internship document.
const DocumentFieldName = "document"

// DocumentKindForField maps a multipart field name to its kind.
func DocumentKindForField(field string) DocumentKind {
	if field == DocumentFieldName {
		return DocumentKindDocument
	}
	return DocumentKindOther
}
