package kakuyomu

// ContentNotFound is returned in place of an episode body when the page has
// no body container.
const ContentNotFound = "エピソードの本文が見つかりませんでした。"

// BodyExtractor extracts the prose of an episode page.
type BodyExtractor interface {
	// ExtractBody returns the episode paragraphs joined by newlines, or
	// ContentNotFound when the page carries no body. It never fails.
	ExtractBody(html string) string
}
