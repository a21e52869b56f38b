package ocr

// BuildPrompt returns the page transcription instruction with the anchor
// text embedded between the RAW_TEXT markers the model was tuned on.
func BuildPrompt(anchorText string) string {
	return "Below is the image of one page of a document, as well as some raw textual content that was previously extracted for it. " +
		"Just return the plain text representation of this document as if you were reading it naturally.\n" +
		"Do not hallucinate.\n" +
		"RAW_TEXT_START\n" + anchorText + "\nRAW_TEXT_END"
}
