package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the moderation state of a review.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// ParseReviewStatus validates a raw review status value.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch ReviewStatus(s) {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return ReviewStatus(s), nil
	}
	return "", ErrInvalidStatus
}

var (
	ReviewAgeGroups = []string{"Below 20", "20-29", "30-39", "40-49", "Above 50"}
	ReviewGenders   = []string{"Male", "Female", "Other"}
)

// Review is customer feedback on a product. Reviews start PENDING and are
// moved to APPROVED or REJECTED by an admin.
type Review struct {
	ID                 uuid.UUID    `json:"id" db:"id"`
	ProductID          uuid.UUID    `json:"productId" db:"product_id"`
	Rating             int          `json:"rating" db:"rating"`
	Title              string       `json:"reviewTitle" db:"title"`
	Body               string       `json:"review" db:"body"`
	Images             []string     `json:"reviewImages" db:"images"`
	FirstName          string       `json:"firstName" db:"first_name"`
	LastName           string       `json:"lastName" db:"last_name"`
	Email              string       `json:"-" db:"email"`
	AgeGroup           string       `json:"ageGroup" db:"age_group"`
	Gender             string       `json:"gender" db:"gender"`
	IsRecommended      bool         `json:"isProductRecomended" db:"is_recommended"`
	IsPurchaseVerified bool         `json:"isPurchaseVerified" db:"is_purchase_verified"`
	Status             ReviewStatus `json:"status" db:"status"`
	CreatedAt          time.Time    `json:"createdAt" db:"created_at"`
}

// ReviewRequest is the storefront payload for submitting a review.
type ReviewRequest struct {
	Rating        int      `json:"rating"`
	Title         string   `json:"reviewTitle"`
	Body          string   `json:"review"`
	Images        []string `json:"reviewImages,omitempty"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	AgeGroup      string   `json:"ageGroup"`
	Gender        string   `json:"gender"`
	IsRecommended *bool    `json:"isProductRecomended"`
}

// ProductReviewStats accompanies a product detail response.
type ProductReviewStats struct {
	Count         int      `json:"reviewsCount"`
	AverageRating float64  `json:"averageRating"`
	Latest        []Review `json:"productReviews"`
}
