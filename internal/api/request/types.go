package request

// SubmissionRequest is the request body for submitting an invite
// count. Invites carries the raw submitted text; the server
// normalizes and validates it exactly like the chat transport does.
type SubmissionRequest struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Invites     string `json:"invites"`
}
