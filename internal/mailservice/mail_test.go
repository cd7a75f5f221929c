package mailservice

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	mockParser := new(MockTemplate)
	mockDialer := new(MockDialer)

	mailer := Mail{
		dialer: mockDialer,
		parser: mockParser,
		sender: "blog@growse.com",
	}

	subject := bytes.NewBufferString("New Comment on growse.com")
	plainBody := bytes.NewBufferString("Someone posted a comment.")
	htmlBody := bytes.NewBufferString("<p>Someone posted a comment.</p>")
	mockParser.On("ParseTemplate", "comment_notification.html", mock.Anything).Return(subject, plainBody, htmlBody, nil)

	mockDialer.On("DialAndSend", mock.AnythingOfType("[]*mail.Message")).Return(nil)

	err := mailer.send("comments@growse.com", nil, "comment_notification.html")
	assert.NoError(t, err)

	mockParser.AssertExpectations(t)
	mockDialer.AssertExpectations(t)
}
