package repositories

import (
	"context"
	"database/sql"

	"github.com/lp-esports/sports-day-system/db"
	"github.com/lp-esports/sports-day-system/models"
)

// LeaderboardRepository serves the read-only joined views of results.
type LeaderboardRepository interface {
	// List returns result rows joined with student, class and sport
	// metadata, ordered fastest-first. Both filters are conjunctive.
	List(ctx context.Context, sportID, classID *int) ([]models.LeaderboardEntry, error)
	// ListBySportOrder returns the unfiltered join ordered by sport id,
	// then by time within each sport, for the showcase display.
	ListBySportOrder(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type sqlLeaderboardRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLLeaderboardRepository(conn *sql.DB, dialect db.Dialect) LeaderboardRepository {
	return &sqlLeaderboardRepository{db: conn, dialect: dialect}
}

const leaderboardBaseQuery = `
	SELECT r.id, r.student_id, r.sport_id, r.time_min, r.time_sec, r.photo_key, r.created_at,
	       s.name_zh, s.name_en, s.student_number, c.name AS class_name, sp.name AS sport_name
	FROM results r
	JOIN students s ON r.student_id = s.id
	JOIN classes c ON s.class_id = c.id
	JOIN sports sp ON r.sport_id = sp.id`

func (r *sqlLeaderboardRepository) List(ctx context.Context, sportID, classID *int) ([]models.LeaderboardEntry, error) {
	query := leaderboardBaseQuery
	args := []interface{}{}

	conditions := ""
	if sportID != nil {
		conditions = ` WHERE r.sport_id = ?`
		args = append(args, *sportID)
	}
	if classID != nil {
		if conditions == "" {
			conditions = ` WHERE s.class_id = ?`
		} else {
			conditions += ` AND s.class_id = ?`
		}
		args = append(args, *classID)
	}

	query += conditions + ` ORDER BY r.time_min ASC, r.time_sec ASC`
	return r.queryEntries(ctx, query, args...)
}

func (r *sqlLeaderboardRepository) ListBySportOrder(ctx context.Context) ([]models.LeaderboardEntry, error) {
	query := leaderboardBaseQuery + ` ORDER BY sp.id ASC, r.time_min ASC, r.time_sec ASC`
	return r.queryEntries(ctx, query)
}

func (r *sqlLeaderboardRepository) queryEntries(ctx context.Context, query string, args ...interface{}) ([]models.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0)
	for rows.Next() {
		var entry models.LeaderboardEntry
		if scanErr := rows.Scan(
			&entry.ID,
			&entry.StudentID,
			&entry.SportID,
			&entry.TimeMin,
			&entry.TimeSec,
			&entry.PhotoKey,
			&entry.CreatedAt,
			&entry.NameZH,
			&entry.NameEN,
			&entry.StudentNumber,
			&entry.ClassName,
			&entry.SportName,
		); scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
