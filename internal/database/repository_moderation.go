package database

import (
	"context"
	"fmt"

	"github.com/Arhamsiaf65/CityInsights/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	adColumns          = "id, business_name, title, description, images, address, start_date, end_date, created_by, status, created_at"
	liveStreamColumns  = "id, title, embed_url, start_time, end_time, is_live, description, created_at"
	applicationColumns = "a.id, a.user_id, u.name AS user_name, a.cnic_front, a.cnic_back, a.face_photo, a.status, a.admin_note, a.submitted_at, a.reviewed_at"
)

// ====================
// Ads
// ====================

// ListActiveAds returns approved ads whose window covers now.
func (r *Repository) ListActiveAds(ctx context.Context) ([]domain.Ad, error) {
	ads := []domain.Ad{}
	query := `SELECT ` + adColumns + ` FROM ads
		WHERE status = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date DESC`
	if err := r.db.SelectContext(ctx, &ads, query, domain.StatusApproved, r.now()); err != nil {
		return nil, mapError(err, "list active ads")
	}
	return ads, nil
}

// ListAds returns every ad, newest first.
func (r *Repository) ListAds(ctx context.Context) ([]domain.Ad, error) {
	ads := []domain.Ad{}
	if err := r.db.SelectContext(ctx, &ads, `SELECT `+adColumns+` FROM ads ORDER BY created_at DESC`); err != nil {
		return nil, mapError(err, "list ads")
	}
	return ads, nil
}

// CreateAd stores a pending ad.
func (r *Repository) CreateAd(ctx context.Context, createdBy uuid.UUID, req *domain.AdRequest) (*domain.Ad, error) {
	ad := &domain.Ad{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO ads (id, business_name, title, description, images, address, start_date, end_date,
			created_by, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+adColumns,
		uuid.New(), req.BusinessName, req.Title, req.Description, pq.Array(nonNil(req.Images)), req.Address,
		req.StartDate, req.EndDate, createdBy, domain.StatusPending, r.now(),
	).StructScan(ad)
	if err != nil {
		return nil, mapError(err, "create ad")
	}
	return ad, nil
}

// UpdateAdStatus records an admin review.
func (r *Repository) UpdateAdStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus) (*domain.Ad, error) {
	query, args, err := buildUpdateQuery("ads", id, []column{{"status", status}}, false, r.now(), adColumns)
	if err != nil {
		return nil, err
	}
	ad := &domain.Ad{}
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(ad); err != nil {
		return nil, mapError(err, "update ad status")
	}
	return ad, nil
}

// ====================
// Live streams
// ====================

// RefreshLiveStreams deletes ended streams and flags the ones on air.
// It returns the remaining streams by start time.
func (r *Repository) RefreshLiveStreams(ctx context.Context) ([]domain.LiveStream, error) {
	streams := []domain.LiveStream{}
	now := r.now()
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM live_streams WHERE end_time < $1`, now); err != nil {
			return mapError(err, "delete ended streams")
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE live_streams SET is_live = (start_time <= $1 AND end_time >= $1)`, now); err != nil {
			return mapError(err, "mark live streams")
		}
		if err := tx.SelectContext(ctx, &streams,
			`SELECT `+liveStreamColumns+` FROM live_streams ORDER BY start_time ASC`); err != nil {
			return mapError(err, "list streams")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return streams, nil
}

// CreateLiveStream schedules a stream. embedURL must already be an embed link.
func (r *Repository) CreateLiveStream(ctx context.Context, req *domain.LiveStreamRequest, embedURL string) (*domain.LiveStream, error) {
	now := r.now()
	stream := &domain.LiveStream{}
	isLive := !req.StartTime.After(now) && !req.EndTime.Before(now)
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO live_streams (id, title, embed_url, start_time, end_time, is_live, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+liveStreamColumns,
		uuid.New(), req.Title, embedURL, req.StartTime, req.EndTime, isLive, req.Description, now,
	).StructScan(stream)
	if err != nil {
		return nil, mapError(err, "create live stream")
	}
	return stream, nil
}

// DeleteLiveStream removes a stream.
func (r *Repository) DeleteLiveStream(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM live_streams WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete live stream")
	}
	return requireAffected(res, "delete live stream")
}

// ====================
// Publisher applications
// ====================

// CreateApplication stores a pending application and marks the user as
// applied. One application per user.
func (r *Repository) CreateApplication(ctx context.Context, userID uuid.UUID, req *domain.ApplicationRequest) (*domain.PublisherApplication, error) {
	id := uuid.New()
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO publisher_applications (id, user_id, cnic_front, cnic_back, face_photo, status, submitted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id, userID, req.CNICFront, req.CNICBack, req.FacePhoto, domain.StatusPending, r.now()); err != nil {
			return mapError(err, "create application")
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE users SET verification_status = $1, requested_role = $2, updated_at = $3 WHERE id = $4`,
			domain.VerificationApplied, domain.RolePublisher, r.now(), userID)
		return mapError(err, "mark user applied")
	})
	if err != nil {
		return nil, err
	}
	return r.GetApplication(ctx, id)
}

// GetApplication retrieves an application with the applicant's name.
func (r *Repository) GetApplication(ctx context.Context, id uuid.UUID) (*domain.PublisherApplication, error) {
	app := &domain.PublisherApplication{}
	query := `SELECT ` + applicationColumns + `
		FROM publisher_applications a JOIN users u ON u.id = a.user_id
		WHERE a.id = $1`
	if err := r.db.GetContext(ctx, app, query, id); err != nil {
		return nil, mapError(err, "get application")
	}
	return app, nil
}

// ListApplications returns applications, optionally by status.
func (r *Repository) ListApplications(ctx context.Context, status domain.ReviewStatus) ([]domain.PublisherApplication, error) {
	apps := []domain.PublisherApplication{}
	query := `SELECT ` + applicationColumns + `
		FROM publisher_applications a JOIN users u ON u.id = a.user_id`
	var args []any
	if status != "" {
		query += ` WHERE a.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY a.submitted_at DESC`
	if err := r.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, mapError(err, "list applications")
	}
	return apps, nil
}

// ReviewApplication decides an application. Approval promotes the user to
// publisher; either outcome updates the user's verification status.
func (r *Repository) ReviewApplication(ctx context.Context, id uuid.UUID, req *domain.ReviewRequest) (*domain.PublisherApplication, error) {
	if !req.Status.Decided() {
		return nil, domain.ErrInvalidStatus
	}
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var userID uuid.UUID
		err := tx.QueryRowxContext(ctx, `
			UPDATE publisher_applications
			SET status = $1, admin_note = $2, reviewed_at = $3
			WHERE id = $4
			RETURNING user_id
		`, req.Status, req.AdminNote, r.now(), id).Scan(&userID)
		if err != nil {
			return mapError(err, "review application")
		}

		verification := domain.VerificationRejected
		roleClause := ""
		if req.Status == domain.StatusApproved {
			verification = domain.VerificationApproved
			roleClause = fmt.Sprintf(", role = '%s'", domain.RolePublisher)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET verification_status = $1, requested_role = NULL, updated_at = $2`+roleClause+` WHERE id = $3`,
			verification, r.now(), userID)
		return mapError(err, "update applicant")
	})
	if err != nil {
		return nil, err
	}
	return r.GetApplication(ctx, id)
}
