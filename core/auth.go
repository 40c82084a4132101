package core

// RegisterInput contains the data needed to create a new principal.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// RegisterResult contains the newly created principal.
//
// Registration never issues a token: mentors start out pending and end
// users are expected to sign in explicitly.
type RegisterResult struct {
	Principal *Principal `json:"principal"`
}

// SignInInput contains the credentials for authentication. ClientIP is
// set by the transport layer, never from the request body.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ClientIP string `json:"-"`
}

// SignInResult contains the authenticated principal and their session token.
type SignInResult struct {
	Principal *Principal `json:"principal"`
	Token     string     `json:"token"`
}

// ChangePasswordInput rotates a principal's own secret.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CreateContentInput contains the metadata for a new content item.
type CreateContentInput struct {
	Kind     ContentKind `json:"kind"`
	Title    string      `json:"title"`
	Subject  string      `json:"subject"`
	Category string      `json:"category"`
	WithFile bool        `json:"withFile"`
}

// CreateContentResult contains the created item and, when a file payload
// was requested, a presigned URL the client PUTs the file to.
type CreateContentResult struct {
	Item      *ContentItem `json:"item"`
	UploadURL string       `json:"uploadUrl,omitempty"`
}

// UpdateContentInput updates item metadata. Nil fields are left
// unchanged, so an explicit empty string clears category. The file
// reference and owner are immutable after creation.
type UpdateContentInput struct {
	Title    *string      `json:"title"`
	Subject  *string      `json:"subject"`
	Category *string      `json:"category"`
	Kind     *ContentKind `json:"kind"`
}
