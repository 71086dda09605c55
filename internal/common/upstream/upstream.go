package upstream

// Error is a non-success answer from a third-party API. The provider
// message is passed through to the client verbatim.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "upstream rejected the request"
	}
	return e.Message
}
