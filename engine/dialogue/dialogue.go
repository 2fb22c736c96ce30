// Package dialogue implements the modal dialogue box. While a dialogue is
// open the world is frozen and only a dismiss advances it.
package dialogue

// Page is one screen of dialogue text.
type Page struct {
	Speaker string
	Text    string
}

// Queue holds the pages waiting to be read. The zero value is an empty,
// inactive queue.
type Queue struct {
	pages []Page
	shown int
}

// Push appends pages spoken by speaker. Empty text is skipped.
func (q *Queue) Push(speaker string, texts ...string) {
	for _, t := range texts {
		if t == "" {
			continue
		}
		q.pages = append(q.pages, Page{Speaker: speaker, Text: t})
	}
}

// Active reports whether a page is waiting for dismissal.
func (q *Queue) Active() bool {
	return len(q.pages) > 0
}

// Current returns the page on screen.
func (q *Queue) Current() (Page, bool) {
	if len(q.pages) == 0 {
		return Page{}, false
	}
	return q.pages[0], true
}

// Remaining returns how many pages are left, including the current one.
func (q *Queue) Remaining() int {
	return len(q.pages)
}

// Shown returns how many pages have been dismissed in total.
func (q *Queue) Shown() int {
	return q.shown
}

// Dismiss closes the current page. Returns true when that closed the last
// page and the dialogue ended.
func (q *Queue) Dismiss() bool {
	if len(q.pages) == 0 {
		return false
	}
	q.pages = q.pages[1:]
	q.shown++
	return len(q.pages) == 0
}

// Clear drops every pending page.
func (q *Queue) Clear() {
	q.pages = nil
}
