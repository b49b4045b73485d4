package summary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"license-hub/vars"
)

var compareTmpl = template.Must(template.New("compare").Parse(vars.COMPARE))

var ErrEmptyResponse = errors.New("llm returned no message")

// Summarizer 调用聊天模型生成摘要与修订差异，输出原样返回，不做结构化解析
type Summarizer struct {
	chatModel model.BaseChatModel
}

func NewSummarizer(chatModel model.BaseChatModel) *Summarizer {
	return &Summarizer{chatModel: chatModel}
}

// Summarize 协议摘要：授权内容、地域、品牌、授权方、起止日期
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.generate(ctx, vars.SUMMARY+text)
}

// Compare 对比原协议与修订文本，只列出变化
func (s *Summarizer) Compare(ctx context.Context, original, amendment string) (string, error) {
	var buf bytes.Buffer
	err := compareTmpl.Execute(&buf, map[string]string{
		"Original":  original,
		"Amendment": amendment,
	})
	if err != nil {
		return "", err
	}
	return s.generate(ctx, buf.String())
}

func (s *Summarizer) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", fmt.Errorf("llm generate failed: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	return resp.Content, nil
}
