package automod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildReportPayload(t *testing.T) {
	assert := assert.New(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	evt := &MessageEvent{
		MessageID: "msg-1",
		Author:    Author{ID: "user-1", Username: "someone", AvatarURL: "https://cdn.example.com/a.webp"},
		Content:   "check this out",
	}
	steps := []StepResult{
		{Stage: StageMessageAction, Status: StepSucceeded, Description: "Message deleted"},
		{Stage: StageUserAction, Status: StepFailed, Description: "User banned"},
	}

	p := buildReportPayload(evt, "- Banned link (spam.example.com)", steps, now)
	assert.Equal("Automod Report", p.Title)
	assert.Equal(reportColor, p.Color)
	assert.Equal("someone", p.AuthorName)
	assert.Equal("ID: user-1", p.Footer)
	assert.Equal(now, p.Timestamp)

	expected := "**Reasons:**\n" +
		"- Banned link (spam.example.com)\n\n" +
		"**Actions Taken:**\n" +
		"- Message deleted\n" +
		"- User banned (failed)\n\n" +
		"**Message:**\n" +
		"check this out\n\n" +
		"No Attachments"
	assert.Equal(expected, p.Body)
}

func TestBuildReportPayloadMarkers(t *testing.T) {
	assert := assert.New(t)

	evt := &MessageEvent{
		Author: Author{ID: "user-1"},
		Attachments: []Attachment{
			{URL: "https://cdn.example.com/one.png"},
			{URL: "https://cdn.example.com/two.png"},
		},
	}

	p := buildReportPayload(evt, "- Attachment spam (2), without message content", nil, time.Now())
	assert.Contains(p.Body, "**Message:**\nNo Content\n")
	assert.Contains(p.Body, "https://cdn.example.com/one.png\nhttps://cdn.example.com/two.png")
}
