package mailservice

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendCommentNotifications(t *testing.T) {
	mockMC := new(MockMessageConsumer)
	mockMailer := new(MockMailer)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:       mockMC,
		m:        mockMailer,
		operator: "comments@growse.com",
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}

	s.SendCommentNotifications()

	time.Sleep(1 * time.Second)

	assert.True(t, mockMailer.Called, "expected a notification to be sent")
	assert.Equal(t, "comments@growse.com", mockMailer.Email, "expected the notification to go to the operator address")

	t.Cleanup(func() {
		s.Close()
	})
}
