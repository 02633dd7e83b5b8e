package http

import (
	"encoding/json"
	"net/http"

	"knowledgelib/pkg/problemdetails"
)

const problemContentType = "application/problem+json"

// writeJSON renders data as a JSON body with the given status. Encode failures
// are ignored: by the time encoding runs the status line is already on the
// wire, so there is nothing useful left to tell the client.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeProblem renders an RFC 7807 body under its registered media type. The
// problem's own status field drives the response status.
func writeProblem(w http.ResponseWriter, problem *problemdetails.ProblemDetail) {
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(problem.Status)
	_ = json.NewEncoder(w).Encode(problem)
}
