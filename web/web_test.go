package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_Parse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"login.html",
		"agreement_new.html",
		"agreement_review.html",
		"amendment_new.html",
		"amendment_review.html",
		"agreements.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestLogin_NoMenuWithoutUser(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "login.html", map[string]any{
		"Title": "Login", "User": "", "Menu": "", "Error": "Invalid login", "Username": "alice",
	}))
	assert.Contains(t, buf.String(), "Invalid login")
	assert.NotContains(t, buf.String(), "Upload Agreement")
}

func TestDateFunc(t *testing.T) {
	date := funcs["date"].(func(*time.Time) string)
	d := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-15", date(&d))
	assert.Equal(t, "", date(nil))
}
