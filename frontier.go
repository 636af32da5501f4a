package dockharden

// URLFrontier holds pending crawl URLs.
// Duplicates are accepted on Add; the crawler filters them against its
// visited set when they are taken.
type URLFrontier interface {
	// Add inserts a URL unconditionally.
	Add(url string)

	// Take removes and returns one pending URL.
	// Returns false if the frontier is empty.
	Take() (string, bool)

	// Len returns the number of pending URLs, duplicates included.
	Len() int
}
