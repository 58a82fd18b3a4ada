package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBodyWithCallToAction(t *testing.T) {
	html, err := renderBody("Hi, Ada!", "Please verify your account.", &CallToAction{
		Text: "Verify Email",
		Link: "https://app.example.com/confirm?token=abc",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Hi, Ada!")
	assert.Contains(t, html, "Please verify your account.")
	assert.Contains(t, html, `href="https://app.example.com/confirm?token=abc"`)
	assert.Contains(t, html, "Verify Email")
}

func TestRenderBodyWithoutCallToAction(t *testing.T) {
	html, err := renderBody("Hello", "Nothing to click here.", nil)
	require.NoError(t, err)

	assert.Contains(t, html, "Nothing to click here.")
	assert.NotContains(t, html, "<a href")
}

func TestRenderBodyEscapesInput(t *testing.T) {
	html, err := renderBody("<script>alert(1)</script>", "body", nil)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("no-reply@paxinfy.com", "ada@example.com", "Welcome", "<p>hi</p>")

	assert.True(t, strings.HasPrefix(msg, "From: no-reply@paxinfy.com\r\n"))
	assert.Contains(t, msg, "To: ada@example.com\r\n")
	assert.Contains(t, msg, "Subject: Welcome\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	assert.Contains(t, msg, "\r\n\r\n<p>hi</p>")
}
