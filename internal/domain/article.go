package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type Article struct {
	ID             int64
	Slug           string
	Title          string
	Description    string
	Body           string
	TagList        []string
	AuthorID       int64
	FavoritesCount int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ArticleView is an article as seen by one viewer.
type ArticleView struct {
	Article
	Favorited bool
	Author    Profile
}

type ArticleList struct {
	Articles []ArticleView
	// Count is the number of articles matching the filter, not the page size.
	Count int
}

// ArticleFilter selects articles for listing. Tag, Author and FavoritedBy are
// OR-combined: supplying several widens the result set. Empty means unset.
type ArticleFilter struct {
	Tag         string
	Author      string
	FavoritedBy string
	Limit       int
	Offset      int
}

func (f ArticleFilter) Normalize() ArticleFilter {
	f.Limit, f.Offset = NormalizePage(f.Limit, f.Offset)
	return f
}

func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type ArticleInput struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

func (in ArticleInput) Validate() error {
	var verr ValidationError
	if strings.TrimSpace(in.Title) == "" {
		verr.Add("title", "can't be blank")
	} else if Slugify(in.Title) == "" {
		verr.Add("title", "must contain a letter or digit")
	}
	if strings.TrimSpace(in.Description) == "" {
		verr.Add("description", "can't be blank")
	}
	if strings.TrimSpace(in.Body) == "" {
		verr.Add("body", "can't be blank")
	}
	checkText(&verr, "title", in.Title)
	checkText(&verr, "description", in.Description)
	checkText(&verr, "body", in.Body)
	checkTags(&verr, in.TagList)
	return verr.Err()
}

// ArticlePatch holds a partial update; nil fields are left unchanged.
type ArticlePatch struct {
	Title       *string
	Description *string
	Body        *string
	TagList     *[]string
}

func (p ArticlePatch) Validate() error {
	var verr ValidationError
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			verr.Add("title", "can't be blank")
		} else if Slugify(*p.Title) == "" {
			verr.Add("title", "must contain a letter or digit")
		}
	}
	if p.Body != nil && strings.TrimSpace(*p.Body) == "" {
		verr.Add("body", "can't be blank")
	}
	checkTextPtr(&verr, "title", p.Title)
	checkTextPtr(&verr, "description", p.Description)
	checkTextPtr(&verr, "body", p.Body)
	if p.TagList != nil {
		checkTags(&verr, *p.TagList)
	}
	return verr.Err()
}

// ValidateCommentBody rejects blank bodies and text the store cannot hold.
func ValidateCommentBody(body string) error {
	var verr ValidationError
	if strings.TrimSpace(body) == "" {
		verr.Add("body", "can't be blank")
	}
	checkText(&verr, "body", body)
	return verr.Err()
}

// checkText rejects NUL bytes, which Postgres text columns cannot store.
func checkText(verr *ValidationError, field, value string) {
	if strings.ContainsRune(value, 0) {
		verr.Add(field, "contains invalid characters")
	}
}

func checkTextPtr(verr *ValidationError, field string, value *string) {
	if value != nil {
		checkText(verr, field, *value)
	}
}

func checkTags(verr *ValidationError, tags []string) {
	for _, t := range tags {
		if strings.ContainsRune(t, 0) {
			verr.Add("tagList", "contains invalid characters")
			return
		}
	}
}

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases title, collapses every run of characters outside
// [a-z0-9] into one hyphen and trims hyphens from both ends.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// NormalizeTags trims tags and drops empty and repeated ones, keeping order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

type Comment struct {
	ID        int64
	ArticleID int64
	AuthorID  int64
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CommentView struct {
	Comment
	Author Profile
}
