package domain

import "time"

type EventAction string

const (
	ActionArticleCreated     EventAction = "article.created"
	ActionArticleUpdated     EventAction = "article.updated"
	ActionArticleDeleted     EventAction = "article.deleted"
	ActionArticleFavorited   EventAction = "article.favorited"
	ActionArticleUnfavorited EventAction = "article.unfavorited"
)

// ArticleEvent is emitted after an article mutation has been committed.
type ArticleEvent struct {
	Action    EventAction `json:"action"`
	ArticleID int64       `json:"articleId,omitempty"`
	Slug      string      `json:"slug"`
	ActorID   int64       `json:"actorId"`
	Timestamp time.Time   `json:"timestamp"`
}
