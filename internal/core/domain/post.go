package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrNoImage = errors.New("no image uploaded")
var ErrImageTooLarge = errors.New("image exceeds size limit")
var ErrInvalidImageType = errors.New("invalid file type, only images are allowed")

// Post is a single feed entry: one hosted image with optional text.
type Post struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	ImageURL  string    `json:"imageUrl"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     []string  `json:"likes"`
}
