package pressroom

// IssueKind classifies a problem found in article HTML.
type IssueKind string

// Issue kinds reported by a ContentChecker.
const (
	IssueDuplicateID  IssueKind = "duplicate-id"
	IssueBrokenAnchor IssueKind = "broken-anchor"
	IssueSkippedLevel IssueKind = "skipped-level"
	IssueEmptyHeading IssueKind = "empty-heading"
)

// Issue describes a navigation or accessibility problem in article HTML.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Target  string    `json:"target"` // id, fragment or heading text involved
	Message string    `json:"message"`
}

// ContentChecker inspects processed HTML for anchor and heading problems.
type ContentChecker interface {
	// Check returns issues in document order.
	// Returns EINVALID if the HTML cannot be parsed.
	Check(html string) ([]Issue, error)
}
