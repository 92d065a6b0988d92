// Package detector classifies raw content into a content type using
// structural heuristics: diff and trailer patterns for commits, header
// blocks for email, speaker turns for transcripts, message headers for
// chat, definition keywords and brace density for code, and markdown
// headers for documents.
//
// Detection never fails. Ambiguous input resolves to plain text, and an
// explicitly supplied type always takes precedence over detection.
package detector
