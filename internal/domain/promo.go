package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ReviewStatus is shared by ads and publisher applications.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

// Decided reports whether s is a final review outcome.
func (s ReviewStatus) Decided() bool {
	return s == StatusApproved || s == StatusRejected
}

// Ad is a business advertisement shown between its start and end dates.
type Ad struct {
	ID           uuid.UUID      `db:"id"            json:"id"`
	BusinessName string         `db:"business_name" json:"businessName"`
	Title        string         `db:"title"         json:"title"`
	Description  string         `db:"description"   json:"description"`
	Images       pq.StringArray `db:"images"        json:"images"`
	Address      string         `db:"address"       json:"address"`
	StartDate    time.Time      `db:"start_date"    json:"startDate"`
	EndDate      time.Time      `db:"end_date"      json:"endDate"`
	CreatedBy    uuid.UUID      `db:"created_by"    json:"createdBy"`
	Status       ReviewStatus   `db:"status"        json:"status"`
	CreatedAt    time.Time      `db:"created_at"    json:"createdAt"`
}

// AdRequest is the ad submission payload.
type AdRequest struct {
	BusinessName string    `binding:"required" json:"businessName"`
	Title        string    `binding:"required" json:"title"`
	Description  string    `binding:"required" json:"description"`
	Images       []string  `json:"images"`
	Address      string    `binding:"required" json:"address"`
	StartDate    time.Time `binding:"required" json:"startDate"`
	EndDate      time.Time `binding:"required" json:"endDate"`
}

// ReviewRequest approves or rejects an ad or application.
type ReviewRequest struct {
	Status    ReviewStatus `binding:"required" json:"status"`
	AdminNote *string      `json:"adminNote"`
}

// LiveStream is a scheduled video stream.
type LiveStream struct {
	ID          uuid.UUID `db:"id"          json:"id"`
	Title       string    `db:"title"       json:"title"`
	EmbedURL    string    `db:"embed_url"   json:"embedUrl"`
	StartTime   time.Time `db:"start_time"  json:"startTime"`
	EndTime     time.Time `db:"end_time"    json:"endTime"`
	IsLive      bool      `db:"is_live"     json:"isLive"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at"  json:"createdAt"`
}

// LiveStreamRequest schedules a stream.
type LiveStreamRequest struct {
	Title       string    `binding:"required" json:"title"`
	URL         string    `binding:"required" json:"url"`
	StartTime   time.Time `binding:"required" json:"startTime"`
	EndTime     time.Time `binding:"required" json:"endTime"`
	Description *string   `json:"description"`
}

// PublisherApplication is a request to become a publisher.
type PublisherApplication struct {
	ID          uuid.UUID    `db:"id"           json:"id"`
	UserID      uuid.UUID    `db:"user_id"      json:"userId"`
	UserName    string       `db:"user_name"    json:"userName"`
	CNICFront   string       `db:"cnic_front"   json:"cnicFront"`
	CNICBack    string       `db:"cnic_back"    json:"cnicBack"`
	FacePhoto   string       `db:"face_photo"   json:"facePhoto"`
	Status      ReviewStatus `db:"status"       json:"status"`
	AdminNote   *string      `db:"admin_note"   json:"adminNote,omitempty"`
	SubmittedAt time.Time    `db:"submitted_at" json:"submittedAt"`
	ReviewedAt  *time.Time   `db:"reviewed_at"  json:"reviewedAt,omitempty"`
}

// ApplicationRequest carries image URLs of the applicant's documents.
type ApplicationRequest struct {
	CNICFront string `binding:"required,url" json:"cnicFront"`
	CNICBack  string `binding:"required,url" json:"cnicBack"`
	FacePhoto string `binding:"required,url" json:"facePhoto"`
}
