package core

import (
	"path/filepath"
	"strings"
)

var imageSuffixes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
	".heic": true,
}

// ClassifyFilename maps a filename to an attachment category by suffix,
// case-insensitively. An empty filename classifies as AttachmentNone.
func ClassifyFilename(filename string) AttachmentType {
	if filename == "" {
		return AttachmentNone
	}
	switch ext := strings.ToLower(filepath.Ext(filename)); {
	case ext == ".doc" || ext == ".docx":
		return AttachmentWord
	case ext == ".pdf":
		return AttachmentPDF
	case ext == ".txt" || ext == ".csv":
		return AttachmentText
	case imageSuffixes[ext]:
		return AttachmentImage
	default:
		return AttachmentOther
	}
}

// Classify inspects a message's sub-parts in order and returns the category
// of the first one carrying a non-empty filename. Later attachments in
// multi-attachment messages are deliberately ignored; only the first
// filenamed part determines the category.
func Classify(msg *Message) AttachmentType {
	if part := FirstAttachmentPart(msg); part != nil {
		return ClassifyFilename(part.Filename)
	}
	return AttachmentNone
}

// FirstAttachmentPart returns the first sub-part with a non-empty filename,
// or nil when the message has no filenamed parts.
func FirstAttachmentPart(msg *Message) *MessagePart {
	for i := range msg.Parts {
		if msg.Parts[i].Filename != "" {
			return &msg.Parts[i]
		}
	}
	return nil
}
