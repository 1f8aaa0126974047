package db

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/quenchwood/blend/internal/blacklist"
	"github.com/quenchwood/blend/internal/errors"
	"github.com/quenchwood/blend/internal/post"
	"github.com/quenchwood/blend/internal/profile"
)

// InsertPost stores one collected post. The post's Community field holds
// the normalized identifier; rawCommunity preserves the caller's spelling.
func InsertPost(db *sql.DB, rawCommunity string, p *post.RawPost) error {
	query := `
		INSERT INTO posts (
			id, community_raw, community_norm, body, archetype,
			upvote_ratio, comment_count, collected_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query,
		p.ID, rawCommunity, p.Community, p.Text, string(p.Archetype),
		p.UpvoteRatio, p.CommentCount, p.CollectedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewInvalidRequest("post id already exists: " + p.ID)
		}
		return errors.NewInternal(err)
	}
	return nil
}

// ListPosts returns a community's posts, newest first. limit <= 0 means all.
func ListPosts(db *sql.DB, communityNorm string, limit int) ([]post.RawPost, error) {
	query := `
		SELECT id, community_norm, body, archetype,
			upvote_ratio, comment_count, collected_at
		FROM posts
		WHERE community_norm = ?
		ORDER BY collected_at DESC, id DESC
	`
	args := []any{communityNorm}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []post.RawPost
	for rows.Next() {
		var p post.RawPost
		var archetype string
		if err := rows.Scan(&p.ID, &p.Community, &p.Text, &archetype,
			&p.UpvoteRatio, &p.CommentCount, &p.CollectedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		p.Archetype = post.Archetype(archetype)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// CountPosts returns the number of collected posts for a community.
func CountPosts(db *sql.DB, communityNorm string) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM posts WHERE community_norm = ?`, communityNorm).Scan(&n)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// ReplaceProfile writes a community profile, overwriting any previous one.
// Re-analysis replaces the row wholesale; created_at survives the update.
func ReplaceProfile(db *sql.DB, p *profile.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.NewInternal(err)
	}
	query := `
		INSERT INTO profiles (community_norm, sample_size, sensitivity, profile_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(community_norm) DO UPDATE SET
			sample_size = excluded.sample_size,
			sensitivity = excluded.sensitivity,
			profile_json = excluded.profile_json,
			updated_at = excluded.updated_at
	`
	_, err = db.Exec(query, p.Community, p.SampleSize, p.Sensitivity, string(data), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetProfile retrieves a community's profile.
func GetProfile(db *sql.DB, communityNorm string) (*profile.Profile, error) {
	var data string
	var createdAt, updatedAt int64
	err := db.QueryRow(`
		SELECT profile_json, created_at, updated_at
		FROM profiles WHERE community_norm = ?
	`, communityNorm).Scan(&data, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("profile", communityNorm)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	var p profile.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, errors.NewInternal(err)
	}
	// Stored timestamps win over whatever the JSON snapshot carries.
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return &p, nil
}

// ListProfiles returns every stored profile, most recently updated first.
func ListProfiles(db *sql.DB) ([]profile.Profile, error) {
	rows, err := db.Query(`
		SELECT profile_json, created_at, updated_at
		FROM profiles ORDER BY updated_at DESC, community_norm ASC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []profile.Profile
	for rows.Next() {
		var data string
		var createdAt, updatedAt int64
		if err := rows.Scan(&data, &createdAt, &updatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		var p profile.Profile
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, errors.NewInternal(err)
		}
		p.CreatedAt = createdAt
		p.UpdatedAt = updatedAt
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// UpsertPattern inserts a blacklist pattern if the (community, pattern)
// pair is new. Re-upserting an existing pattern is a no-op: the original
// row keeps its category, source, and created_at. Returns whether a row
// was inserted.
func UpsertPattern(db *sql.DB, p *blacklist.Pattern) (bool, error) {
	query := `
		INSERT INTO patterns (id, community_norm, pattern, category, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(community_norm, pattern) DO NOTHING
	`
	res, err := db.Exec(query, p.ID, p.Community, p.Pattern, string(p.Category), string(p.Source), p.CreatedAt)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return n > 0, nil
}

// ListPatterns returns a community's patterns ordered by category then
// pattern text. When includeGlobal is set, patterns from the global
// community are merged in; validation and prompt assembly use both.
func ListPatterns(db *sql.DB, communityNorm string, includeGlobal bool) ([]blacklist.Pattern, error) {
	query := `
		SELECT id, community_norm, pattern, category, source, created_at
		FROM patterns
		WHERE community_norm = ?
	`
	args := []any{communityNorm}
	if includeGlobal && communityNorm != blacklist.GlobalCommunity {
		query += " OR community_norm = ?"
		args = append(args, blacklist.GlobalCommunity)
	}
	query += " ORDER BY category ASC, pattern ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []blacklist.Pattern
	for rows.Next() {
		var p blacklist.Pattern
		var category, source string
		if err := rows.Scan(&p.ID, &p.Community, &p.Pattern, &category, &source, &p.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		p.Category = blacklist.Category(category)
		p.Source = blacklist.Source(source)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// DeletePattern removes a user-added pattern. System-derived patterns are
// immutable: attempting to remove one fails without touching the row.
func DeletePattern(db *sql.DB, communityNorm, patternNorm string) error {
	var source string
	err := db.QueryRow(`
		SELECT source FROM patterns WHERE community_norm = ? AND pattern = ?
	`, communityNorm, patternNorm).Scan(&source)
	if err == sql.ErrNoRows {
		return errors.NewNotFound("pattern", patternNorm)
	}
	if err != nil {
		return errors.NewInternal(err)
	}
	if blacklist.Source(source) == blacklist.SourceSystem {
		return errors.NewPatternImmutable(communityNorm, patternNorm)
	}

	if _, err := db.Exec(`
		DELETE FROM patterns WHERE community_norm = ? AND pattern = ?
	`, communityNorm, patternNorm); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// isUniqueConstraintError reports whether err is a SQLite UNIQUE violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
