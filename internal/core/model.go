package core

// Sentinel values used in persisted records. They distinguish
// "intentionally absent" from extraction or summarization errors.
const (
	SentinelNone      = "none"
	SentinelNoText    = "no text extracted"
	SentinelNoContent = "no content"
	SentinelNoSummary = "summary unavailable"
)

// AttachmentType is the category of the first filenamed attachment of a message.
type AttachmentType int

const (
	AttachmentNone AttachmentType = iota
	AttachmentWord
	AttachmentPDF
	AttachmentText
	AttachmentImage
	AttachmentOther
)

// String returns the value persisted in the attachment_type column.
func (t AttachmentType) String() string {
	switch t {
	case AttachmentWord:
		return "word_document"
	case AttachmentPDF:
		return "pdf"
	case AttachmentText:
		return "text_file"
	case AttachmentImage:
		return "image"
	case AttachmentOther:
		return "other"
	default:
		return SentinelNone
	}
}

// Sender is a parsed From header.
type Sender struct {
	Name    string
	Address string
}

// EmailRecord is one harvested email as persisted in the table.
type EmailRecord struct {
	ID                string
	Timestamp         int64
	RawDate           string
	Sender            Sender
	Subject           string
	Body              string
	BodySummary       string
	HasAttachments    bool
	AttachmentType    string
	AttachmentText    string
	AttachmentSummary string
}

// MessagePart is the structural description of one sub-part of a message.
type MessagePart struct {
	Filename     string
	AttachmentID string
}

// Message is the structured form of a fetched mailbox message, reduced to
// the fields the sync engine needs.
type Message struct {
	ID      string
	From    string
	Subject string
	Date    string
	Snippet string
	Parts   []MessagePart
}
