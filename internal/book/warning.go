package book

// Severity classifies a warning record.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Warning is a non-fatal condition surfaced alongside the transformed book,
// never embedded in the document text.
type Warning struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
}
