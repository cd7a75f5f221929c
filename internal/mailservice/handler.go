package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/growse/www.growse.com/internal/common"
	"golang.org/x/exp/rand"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender, operator string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:       mb,
		m:        NewMailer(host, port, username, password, sender, NewTemplate()),
		operator: operator,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SendCommentNotifications consumes comment.created events and mails the
// operator address for each one. Delivery is retried with jittered
// exponential backoff; a message that still fails is acked and logged, since
// comment notifications are fire-and-forget.
func (s *MailService) SendCommentNotifications() {
	msgs, err := s.mb.Consume(common.CommentCreatedKey, common.CommentExchange, common.CommentCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data struct {
					Name         string `json:"name"`
					ArticleTitle string `json:"article_title"`
					ArticleURL   string `json:"article_url"`
				}

				err := json.Unmarshal(msg.Body, &data)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					continue
				}

				const maxRetries = 5
				const baseDelay = 500 * time.Millisecond

				var attempt int
				for attempt = 0; attempt < maxRetries; attempt++ {
					err = s.m.send(s.operator, data, "comment_notification.html")
					if err == nil {
						s.logger.Info("comment notification sent", slog.String("article_url", data.ArticleURL))
						msg.Ack(false)
						break
					}

					delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
					s.logger.Info("delaying comment notification", slog.String("article_url", data.ArticleURL), slog.Int("attempt", attempt), slog.Duration("delay", delay))
					time.Sleep(delay)
				}

				if attempt == maxRetries {
					s.logger.Error("could not send comment notification", slog.String("article_url", data.ArticleURL))
					msg.Ack(false)
				}

			case <-s.ctx.Done():
				s.logger.Info("stopping SendCommentNotifications due to context cancellation")
				return
			}
		}
	}()
}

func (s *MailService) Close() {
	s.cancel()
}
