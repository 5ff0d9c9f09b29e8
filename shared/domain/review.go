package domain

import "time"

type Review struct {
	Id       ReviewId  `json:"id"`
	TitleId  TitleId   `json:"title"`
	AuthorId UserId    `json:"-"`
	Author   Username  `json:"author"`
	Score    Score     `json:"score"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

type ReviewCreationData struct {
	TitleId  TitleId
	AuthorId UserId
	Score    Score
	Text     string
}

type ReviewUpdate struct {
	Score *Score
	Text  *string
}

type Comment struct {
	Id       CommentId `json:"id"`
	ReviewId ReviewId  `json:"-"`
	AuthorId UserId    `json:"-"`
	Author   Username  `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

type CommentCreationData struct {
	ReviewId ReviewId
	AuthorId UserId
	Text     string
}
