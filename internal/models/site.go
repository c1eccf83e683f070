package models

// Site is the blog identity shown in the layout and the feeds.
type Site struct {
	Name        string
	URL         string
	Description string
}
