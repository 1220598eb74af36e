package httpapi

import (
	"time"

	"conduit/internal/domain"
)

type userResponse struct {
	User userJSON `json:"user"`
}

type userJSON struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

func newUserResponse(u *domain.AuthUser) userResponse {
	return userResponse{User: userJSON{
		Email:    u.Email,
		Token:    u.Token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
	}}
}

type profileResponse struct {
	Profile profileJSON `json:"profile"`
}

type profileJSON struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

func newProfile(p domain.Profile) profileJSON {
	return profileJSON{
		Username:  p.Username,
		Bio:       p.Bio,
		Image:     p.Image,
		Following: p.Following,
	}
}

type articleJSON struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int         `json:"favoritesCount"`
	Author         profileJSON `json:"author"`
}

func newArticle(v domain.ArticleView) articleJSON {
	tags := v.TagList
	if tags == nil {
		tags = []string{}
	}
	return articleJSON{
		Slug:           v.Slug,
		Title:          v.Title,
		Description:    v.Description,
		Body:           v.Body,
		TagList:        tags,
		CreatedAt:      v.CreatedAt.UTC(),
		UpdatedAt:      v.UpdatedAt.UTC(),
		Favorited:      v.Favorited,
		FavoritesCount: v.FavoritesCount,
		Author:         newProfile(v.Author),
	}
}

type articleResponse struct {
	Article articleJSON `json:"article"`
}

type articleListResponse struct {
	Articles      []articleJSON `json:"articles"`
	ArticlesCount int           `json:"articlesCount"`
}

func newArticleList(list *domain.ArticleList) articleListResponse {
	out := articleListResponse{
		Articles:      make([]articleJSON, 0, len(list.Articles)),
		ArticlesCount: list.Count,
	}
	for _, v := range list.Articles {
		out.Articles = append(out.Articles, newArticle(v))
	}
	return out
}

type commentJSON struct {
	ID        int64       `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Body      string      `json:"body"`
	Author    profileJSON `json:"author"`
}

func newComment(v domain.CommentView) commentJSON {
	return commentJSON{
		ID:        v.ID,
		CreatedAt: v.CreatedAt.UTC(),
		UpdatedAt: v.UpdatedAt.UTC(),
		Body:      v.Body,
		Author:    newProfile(v.Author),
	}
}

type commentResponse struct {
	Comment commentJSON `json:"comment"`
}

type commentListResponse struct {
	Comments []commentJSON `json:"comments"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

type registerRequest struct {
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

type loginRequest struct {
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

type updateUserRequest struct {
	User struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	} `json:"user"`
}

type createArticleRequest struct {
	Article struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList"`
	} `json:"article"`
}

type updateArticleRequest struct {
	Article struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Body        *string   `json:"body"`
		TagList     *[]string `json:"tagList"`
	} `json:"article"`
}

type commentRequest struct {
	Comment struct {
		Body string `json:"body"`
	} `json:"comment"`
}
