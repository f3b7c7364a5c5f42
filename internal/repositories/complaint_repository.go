package repositories

import (
	"context"
	"database/sql"
	"errors"

	"complaintBack/internal/models"
)

type ComplaintRepository struct {
	DB *sql.DB
}

// CreateComplaint inserts the submitting user, the complaint and one media row
// per stored file in a single transaction. Either all rows land or none do;
// blobs referenced by media are expected to exist before this is called.
func (r *ComplaintRepository) CreateComplaint(ctx context.Context, c models.ComplaintInput, media []models.ComplaintMedia) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (full_name, age, voter_number, gender) VALUES (?, ?, ?, ?)`,
		c.FullName, c.Age, c.VoterNumber, c.Gender)
	if err != nil {
		return 0, err
	}
	userID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO complaints (user_id, category) VALUES (?, ?)`,
		userID, c.Category)
	if err != nil {
		return 0, err
	}
	complaintID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, m := range media {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO complaint_media (complaint_id, file_path, file_type) VALUES (?, ?, ?)`,
			complaintID, m.FilePath, m.FileType)
		if err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return int(complaintID), nil
}

// GetComplaints returns one page of complaints, newest first, each with its
// media list, plus the unfiltered total for pagination metadata. The page
// fetch and the per-complaint media fetches are separate statements with no
// shared snapshot; a complaint deleted in between simply shows empty media.
func (r *ComplaintRepository) GetComplaints(ctx context.Context, limit, offset int) ([]models.Complaint, int, error) {
	query := `
        SELECT c.id, c.user_id, c.category, c.created_at,
               u.full_name, u.age, u.voter_number, u.gender
        FROM complaints c
        LEFT JOIN users u ON c.user_id = u.id
        ORDER BY c.created_at DESC
        LIMIT ? OFFSET ?`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	complaints := []models.Complaint{}
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.UserID, &c.Category, &c.CreatedAt,
			&c.FullName, &c.Age, &c.VoterNumber, &c.Gender); err != nil {
			return nil, 0, err
		}
		complaints = append(complaints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaints`).Scan(&total); err != nil {
		return nil, 0, err
	}

	for i := range complaints {
		media, err := r.mediaForComplaint(ctx, complaints[i].ID)
		if err != nil {
			return nil, 0, err
		}
		complaints[i].Media = media
	}

	return complaints, total, nil
}

// GetComplaintByID fetches one complaint joined with its submitter fields and
// media list. Returns models.ErrComplaintNotFound for an unknown id.
func (r *ComplaintRepository) GetComplaintByID(ctx context.Context, id int) (models.Complaint, error) {
	query := `
        SELECT c.id, c.user_id, c.category, c.created_at,
               u.full_name, u.age, u.voter_number, u.gender
        FROM complaints c
        LEFT JOIN users u ON c.user_id = u.id
        WHERE c.id = ?`

	var c models.Complaint
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.UserID, &c.Category,
		&c.CreatedAt, &c.FullName, &c.Age, &c.VoterNumber, &c.Gender)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Complaint{}, models.ErrComplaintNotFound
	}
	if err != nil {
		return models.Complaint{}, err
	}

	c.Media, err = r.mediaForComplaint(ctx, c.ID)
	if err != nil {
		return models.Complaint{}, err
	}
	return c, nil
}

// DeleteComplaint removes the media rows and then the complaint row in one
// transaction and returns the blob keys that belonged to it so the caller can
// clean up the blob store after the commit. Media rows go first to satisfy the
// foreign key; the user row is left in place. A missing complaint rolls back
// and returns models.ErrComplaintNotFound.
func (r *ComplaintRepository) DeleteComplaint(ctx context.Context, id int) ([]string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT file_path FROM complaint_media WHERE complaint_id = ?`, id)
	if err != nil {
		return nil, err
	}
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, err
		}
		keys = append(keys, key)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM complaint_media WHERE complaint_id = ?`, id); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM complaints WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, models.ErrComplaintNotFound
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *ComplaintRepository) mediaForComplaint(ctx context.Context, complaintID int) ([]models.ComplaintMedia, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, file_path, file_type FROM complaint_media WHERE complaint_id = ? ORDER BY id`,
		complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	media := []models.ComplaintMedia{}
	for rows.Next() {
		var m models.ComplaintMedia
		if err := rows.Scan(&m.ID, &m.FilePath, &m.FileType); err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}
