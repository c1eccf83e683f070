package importer

import (
	"fmt"
	"strings"
	"time"

	"sisyphus/internal/models"
	"sisyphus/internal/services"
)

const sampleBody = `# Sample post %d

This post was generated to try out the blog with realistic content.

## Markdown features

- Lists
- **Bold** and *italic* text
- [Links](https://example.com)

> A quote, to check blockquote styling.

` + "```go" + `
package main

import "fmt"

func main() {
	fmt.Println("Hello, World!")
}
` + "```" + `

| Column | Value |
|--------|-------|
| alpha  | %d    |

Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed non risus.
Suspendisse lectus tortor, dignissim sit amet, adipiscing nec, ultricies sed,
dolor. Cras elementum ultrices diam.
`

var sampleCategories = []string{"Engineering", "Architecture", "Life", "Notes"}

// Seed writes n sample posts dated one day apart, newest today.
func Seed(posts *services.PostService, n int, now time.Time) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("seed count must not be negative, got %d", n)
	}
	slugs := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		category := sampleCategories[i%len(sampleCategories)]
		post, err := posts.ImportPost(models.PostInput{
			Title:       fmt.Sprintf("Sample Post %d", i),
			Category:    category,
			Description: fmt.Sprintf("Generated sample number %d.", i),
			Tags:        strings.Join([]string{"sample", strings.ToLower(category)}, ", "),
			Content:     fmt.Sprintf(sampleBody, i, i),
		}, now.AddDate(0, 0, -(i-1)).Format(time.RFC3339))
		if err != nil {
			return slugs, fmt.Errorf("seed post %d: %w", i, err)
		}
		slugs = append(slugs, post.Slug)
	}
	return slugs, nil
}
