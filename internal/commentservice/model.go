package commentservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var ErrArticleForeignKey = errors.New("article does not exist")

func newCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

// foreignKeyError reports whether err is a violation of the named foreign
// key constraint.
func foreignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *CommentModel) insert(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (article_id, name, website, comment, ip)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING id, datestamp`

	err := m.db.QueryRowContext(ctx, query, comment.ArticleID, comment.Name, comment.Website, comment.Comment, comment.IP).Scan(&comment.ID, &comment.Datestamp)
	if err != nil {
		switch {
		case foreignKeyError(err, "comments_article_id_fkey"):
			return ErrArticleForeignKey
		default:
			return err
		}
	}

	return nil
}

// getByArticleID returns an article's comments, oldest first.
func (m *CommentModel) getByArticleID(ctx context.Context, articleID int) ([]Comment, error) {
	query := `
		SELECT id, article_id, name, COALESCE(website, ''), comment, datestamp, COALESCE(ip, '')
		FROM comments
		WHERE article_id = $1
		ORDER BY datestamp ASC`

	rows, err := m.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var comment Comment
		err := rows.Scan(&comment.ID, &comment.ArticleID, &comment.Name, &comment.Website, &comment.Comment, &comment.Datestamp, &comment.IP)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
