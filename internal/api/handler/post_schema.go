package handler

import "time"

type postResponse struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	ImageURL  string    `json:"imageUrl"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     []string  `json:"likes"`
}

type feedResponse struct {
	Posts []postResponse `json:"posts"`
	Total int64          `json:"total"`
}

type createPostResponse struct {
	Message string       `json:"message"`
	Post    postResponse `json:"post"`
}

// uploadPostForm carries the non-file multipart fields.
type uploadPostForm struct {
	Text string `form:"text" validate:"max=2200"`
}
