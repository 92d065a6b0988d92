package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shortEmail = `From: alice@example.com
To: team@example.com
Subject: Deploy window tonight
Date: Thu, 21 Aug 2025 17:04:00 -0700

The deploy starts at nine and should wrap before midnight.

Ping the channel if anything looks off.
`

func TestEmailKeepsHeaderFieldsWhole(t *testing.T) {
	s := &EmailAware{}
	chunks, err := s.Split(shortEmail, testConfig(60, 5, 0))
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	fields := []string{
		"From: alice@example.com",
		"To: team@example.com",
		"Subject: Deploy window tonight",
		"Date: Thu, 21 Aug 2025 17:04:00 -0700",
	}
	for _, field := range fields {
		var hits int
		for _, c := range chunks {
			if strings.Contains(c.Text, field) {
				hits++
			}
		}
		assert.Equal(t, 1, hits, "field %q should land whole in one chunk", field)
	}
}

func TestEmailBodySplitsAtParagraphs(t *testing.T) {
	s := &EmailAware{}
	chunks, err := s.Split(shortEmail, testConfig(60, 5, 0))
	require.NoError(t, err)

	var sawBodyStart bool
	for _, c := range chunks {
		if strings.HasPrefix(c.Text, "The deploy starts") {
			sawBodyStart = true
			assert.NotContains(t, c.Text, "Date:", "body should not pull headers in")
		}
	}
	assert.True(t, sawBodyStart, "body paragraph should start its own chunk")
}

func TestEmailFoldedHeaderStaysOneUnit(t *testing.T) {
	content := "Received: from mail.example.com\n\tby mx.example.com with ESMTP\nSubject: hi\n\nBody line.\n"
	s := &EmailAware{}
	chunks, err := s.Split(content, testConfig(70, 5, 0))
	require.NoError(t, err)

	var hits int
	for _, c := range chunks {
		if strings.Contains(c.Text, "by mx.example.com with ESMTP") {
			assert.Contains(t, c.Text, "Received: from mail.example.com",
				"folded continuation should stay with its field")
			hits++
		}
	}
	assert.Equal(t, 1, hits)
}

func TestEmailWithoutHeadersIsAllBody(t *testing.T) {
	content := "Just a quoted reply with no headers.\n\nSee you tomorrow.\n"
	s := &EmailAware{}
	chunks, err := s.Split(content, testConfig(45, 5, 0))
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.True(t, strings.HasPrefix(chunks[1].Text, "See you"))
}
