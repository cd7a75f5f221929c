package commentservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/growse/www.growse.com/internal/common"
)

func NewCommentService(db *sql.DB, mb common.MessageProducer, logger *slog.Logger) *CommentService {
	return &CommentService{m: newCommentModel(db), mb: mb, logger: logger}
}

// SubmitComment validates and persists a comment submission. A submission
// that trips the spam filter (filled honeypot, blank name or blank comment)
// is dropped without persistence and without error: the caller redirects
// either way, giving spammers no signal. On acceptance a comment.created
// event is published for the notification mailer; publish failure is logged
// and never rolls back the write or surfaces to the submitter.
func (s *CommentService) SubmitComment(ctx context.Context, req *SubmitCommentRequest) (bool, error) {
	name := strings.TrimSpace(req.Name)
	body := strings.TrimSpace(req.Comment)

	if req.Honeypot != "" || name == "" || body == "" {
		return false, nil
	}

	comment := &Comment{
		ArticleID: req.ArticleID,
		Name:      name,
		Website:   req.Website,
		Comment:   body,
		IP:        req.IP,
	}

	if err := s.m.insert(ctx, comment); err != nil {
		return false, err
	}

	s.publishCreated(ctx, req)

	return true, nil
}

func (s *CommentService) publishCreated(ctx context.Context, req *SubmitCommentRequest) {
	event := CommentCreatedEvent{
		Name:         req.Name,
		ArticleTitle: req.ArticleTitle,
		ArticleURL:   req.ArticleURL,
	}

	msg, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("could not marshal comment event", slog.String("error", err.Error()))
		return
	}

	err = s.mb.Publish(ctx, msg, common.CommentCreatedKey, common.CommentExchange)
	if err != nil {
		s.logger.Error("could not publish comment event", slog.String("error", err.Error()), slog.String("article_url", req.ArticleURL))
	}
}

// GetByArticleID returns an article's comments, oldest first.
func (s *CommentService) GetByArticleID(ctx context.Context, articleID int) ([]Comment, error) {
	v := common.NewValidator()
	v.Check(articleID > 0, "article_id", "must be greater than zero")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByArticleID(ctx, articleID)
}
