package processors

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "abc", CleanText("a\x00b\x00c"))
	assert.Equal(t, "ok – fine", CleanText("ok – fine"))
	assert.Equal(t, "broken", CleanText("bro\xffken"))
	assert.Equal(t, "  keep spacing \n", CleanText("  keep spacing \n"))
}

func TestProcessor_KeepsEmptyPages(t *testing.T) {
	docs, err := Processor(context.Background(), []*schema.Document{
		{Content: "page one"},
		nil,
		{Content: "\x00"},
		{Content: "page three"},
	})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "", docs[1].Content)
	assert.Equal(t, "page three", docs[2].Content)
}
