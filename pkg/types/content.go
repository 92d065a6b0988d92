package types

// ContentType identifies the kind of content being chunked. The set is
// closed: every strategy, detector heuristic, and cache key is defined
// over exactly these values.
type ContentType string

const (
	ContentPlainText ContentType = "plain_text"
	ContentCode      ContentType = "code"
	ContentDocument  ContentType = "document"
	ContentMeeting   ContentType = "meeting"
	ContentGitCommit ContentType = "git_commit"
	ContentSlack     ContentType = "slack_message"
	ContentEmail     ContentType = "email"
)

// AllContentTypes lists every supported content type in a stable order.
func AllContentTypes() []ContentType {
	return []ContentType{
		ContentPlainText,
		ContentCode,
		ContentDocument,
		ContentMeeting,
		ContentGitCommit,
		ContentSlack,
		ContentEmail,
	}
}

// Validate checks that the content type is one of the supported values.
func (ct ContentType) Validate() error {
	switch ct {
	case ContentPlainText, ContentCode, ContentDocument, ContentMeeting,
		ContentGitCommit, ContentSlack, ContentEmail:
		return nil
	default:
		return ErrUnknownContentType
	}
}
