package models

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	// Errors holds human-readable messages, most specific first.
	Errors []string `json:"errors"`
}

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date,omitempty"`
	Commit  string `json:"commit,omitempty"`
}
