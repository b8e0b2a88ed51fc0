package models

import "slices"

// Reel is a short video or image item. Unlike posts it keeps only a comment counter.
type Reel struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId"`
	Desc     string   `json:"desc"`
	Song     string   `json:"song"`
	Likes    []string `json:"likes"`
	Comments int      `json:"comments"`
	VideoURL string   `json:"videoUrl"`
	IsVideo  bool     `json:"isVideo"`
}

func (r Reel) LikedBy(userID string) bool {
	return slices.Contains(r.Likes, userID)
}

type CreateReelRequest struct {
	Caption string `json:"caption" form:"caption" validate:"max=2200"`
	Song    string `json:"song" form:"song" validate:"max=200"`
}
