package github

// contentsResponse is the subset of the contents API metadata response the
// store needs: the file's current blob SHA, which serves as the opaque
// revision identifier for optimistic concurrency.
type contentsResponse struct {
	SHA  string `json:"sha"`
	Path string `json:"path"`
}

// updateRequest is the JSON body of a contents API create-or-update call.
// SHA must be the revision the writer last read; the API rejects the update
// when it no longer matches the head of the branch.
type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch"`
}

// apiError is the JSON error body returned on 4xx/5xx responses.
type apiError struct {
	Message string `json:"message"`
}
