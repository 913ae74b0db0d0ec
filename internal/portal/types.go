package portal

import "onboard/internal/onboarding"

// UserRecord is the server-owned view of an authenticated candidate. The
// client holds a read-only cached copy and refreshes it after mutating
// actions; it never edits the record locally.
type UserRecord struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	Role   string            `json:"role"`
	Status onboarding.Status `json:"status"`
}

// UploadResult is the candidate projection returned after the server has
// parsed and stored a resume.
type UploadResult struct {
	Name          string   `json:"name"`
	Email         string   `json:"email,omitempty"`
	Location      string   `json:"location,omitempty"`
	Skills        []string `json:"skills"`
	HasEmbeddings bool     `json:"has_embeddings"`
}

// Credentials carry a login request. Name is only used when registering.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token     string     `json:"token"`
	TokenType string     `json:"token_type"`
	User      UserRecord `json:"user"`
}

type uploadResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Candidate UploadResult `json:"candidate"`
}

type statusUpdateRequest struct {
	Status onboarding.Status `json:"status"`
}

type statusUpdateResponse struct {
	Success bool       `json:"success"`
	User    UserRecord `json:"user"`
}
