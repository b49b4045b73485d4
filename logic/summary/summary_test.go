package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatModel 记录收到的消息并返回固定回复
type fakeChatModel struct {
	reply    string
	err      error
	received []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.received = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func TestSummarize_SendsTemplatePlusText(t *testing.T) {
	fake := &fakeChatModel{reply: "Rights: exclusive retail.\nTerritory: EU"}
	s := NewSummarizer(fake)

	out, err := s.Summarize(context.Background(), "THE AGREEMENT TEXT")
	require.NoError(t, err)
	assert.Equal(t, "Rights: exclusive retail.\nTerritory: EU", out)

	require.Len(t, fake.received, 1)
	msg := fake.received[0]
	assert.Equal(t, schema.User, msg.Role)
	assert.True(t, strings.HasPrefix(msg.Content, "\nSummarize this license agreement.\nExtract:\n"))
	assert.Contains(t, msg.Content, "- End date or say 'Indefinite'\nReturn plain English.\n")
	assert.True(t, strings.HasSuffix(msg.Content, "Return plain English.\nTHE AGREEMENT TEXT"))
}

func TestCompare_FillsOriginalAndAmendment(t *testing.T) {
	fake := &fakeChatModel{reply: "- End date moved to 2030"}
	s := NewSummarizer(fake)

	out, err := s.Compare(context.Background(), "old summary", "amendment {{.Original}} text")
	require.NoError(t, err)
	assert.Equal(t, "- End date moved to 2030", out)

	require.Len(t, fake.received, 1)
	assert.Equal(t,
		"\nCompare ORIGINAL vs AMENDMENT.\nList only what changed.\nORIGINAL:\nold summary\n\nAMENDMENT:\namendment {{.Original}} text\n",
		fake.received[0].Content)
}

func TestGenerate_PropagatesErrors(t *testing.T) {
	boom := errors.New("connection refused")
	s := NewSummarizer(&fakeChatModel{err: boom})

	_, err := s.Summarize(context.Background(), "text")
	assert.True(t, errors.Is(err, boom))

	_, err = s.Compare(context.Background(), "a", "b")
	assert.True(t, errors.Is(err, boom))
}
