package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dormscout/dormscout/internal/model"
)

var (
	ErrPostNotFound = errors.New("post not found")
)

type PostRepository interface {
	Create(post *model.Post) error
	ByID(id string) (*model.Post, error)
	ByRoom(roomID string) ([]*model.Post, error)
	Delete(userID, postID string) error
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = now
	}

	_, err := r.db.Exec(`
		INSERT INTO posts (id, user_id, room_id, title, content, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, post.ID, post.UserID, post.RoomID, post.Title, post.Content, post.Tags,
		post.CreatedAt, post.UpdatedAt)
	return err
}

func (r *postRepository) ByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.db.Get(&post, `SELECT * FROM posts WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ByRoom(roomID string) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Select(&posts, `
		SELECT * FROM posts WHERE room_id = $1 ORDER BY created_at DESC
	`, roomID)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Delete(userID, postID string) error {
	result, err := r.db.Exec(`DELETE FROM posts WHERE id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}

	return nil
}
