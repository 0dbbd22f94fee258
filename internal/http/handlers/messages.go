package handlers

// Fixed messages produced by the handlers themselves.
const (
	MsgInvalidBody        = "Invalid request body"
	MsgRegistrationFailed = "Registration failed"
	MsgRegistered         = "User registered successfully"
	MsgKeywordsOrTags     = "Invalid request. Provide at least keywords or tags."
	MsgKeywordsMethod     = "Method not allowed. Use POST to process keywords."
	MsgBaseImagesFailed   = "Failed to fetch template images"
	MsgHistoryDisabled    = "History is not enabled"
	MsgHistoryFailed      = "Failed to load history"
	MsgInvalidLimit       = "Limit must be a positive number"
	MsgBackendNotJSON     = "Backend returned a non-JSON response"
)

// FixedMessages lists the handler messages that are shown to users.
func FixedMessages() []string {
	return []string{
		MsgInvalidBody,
		MsgRegistrationFailed,
		MsgRegistered,
		MsgKeywordsOrTags,
		MsgKeywordsMethod,
		MsgBaseImagesFailed,
		MsgHistoryDisabled,
		MsgHistoryFailed,
		MsgInvalidLimit,
		MsgBackendNotJSON,
	}
}
