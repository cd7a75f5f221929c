package commentservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/growse/www.growse.com/internal/common"
)

type Comment struct {
	ID        int       `json:"id"`
	ArticleID int       `json:"article_id"`
	Name      string    `json:"name"`
	Website   string    `json:"website,omitempty"`
	Comment   string    `json:"comment"`
	Datestamp time.Time `json:"datestamp"`
	IP        string    `json:"-"`
}

// SubmitCommentRequest carries the comment form fields plus the article the
// form was posted to. Honeypot is the hidden form field that must stay empty.
type SubmitCommentRequest struct {
	ArticleID    int
	ArticleTitle string
	ArticleURL   string
	Name         string
	Website      string
	Comment      string
	Honeypot     string
	IP           string
}

// CommentCreatedEvent is published to the comment exchange for the
// notification mailer.
type CommentCreatedEvent struct {
	Name         string `json:"name"`
	ArticleTitle string `json:"article_title"`
	ArticleURL   string `json:"article_url"`
}

type CommentModel struct {
	db *sql.DB
}

type CommentService struct {
	m      *CommentModel
	mb     common.MessageProducer
	logger *slog.Logger
}
