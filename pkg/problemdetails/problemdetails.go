package problemdetails

import "fmt"

const (
	TypeMissingSlug      = "missing-slug"
	TypeStoreUnavailable = "store-unavailable"
	TypeInternalError    = "internal-error"
)

// ProblemDetail is an RFC 7807 error body.
type ProblemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func New(status int, problemType, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   fmt.Sprintf("https://knowledgelib.io/problems/%s", problemType),
		Title:  title,
		Status: status,
		Detail: detail,
	}
}
