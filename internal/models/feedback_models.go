package models

import "time"

// Feedback moderation statuses.
const (
	FeedbackPending  = "pending"
	FeedbackReviewed = "reviewed"
	FeedbackArchived = "archived"
)

// IsValidFeedbackStatus reports whether status is a known moderation status.
func IsValidFeedbackStatus(status string) bool {
	switch status {
	case FeedbackPending, FeedbackReviewed, FeedbackArchived:
		return true
	}
	return false
}

// Feedback is a rating and comment left by a user.
type Feedback struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	UserName  string    `json:"userName" db:"user_name"`
	Rating    int       `json:"rating" db:"rating"`
	Message   string    `json:"message" db:"message"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// RatingBucket counts feedback entries with one rating value.
type RatingBucket struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// FeedbackStats summarises all feedback.
type FeedbackStats struct {
	TotalFeedback      int            `json:"totalFeedback"`
	AverageRating      float64        `json:"averageRating"`
	RatingDistribution []RatingBucket `json:"ratingDistribution"`
}
