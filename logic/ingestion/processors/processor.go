package processors

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/schema"
)

// Processor 清洗解析结果：去掉 NUL 字节和非法 UTF-8（数据库 text 列会拒绝）
// 空页面保留，保证按页拼接时行数不变
func Processor(ctx context.Context, src []*schema.Document) ([]*schema.Document, error) {
	cleanDocs := make([]*schema.Document, 0, len(src))
	for _, doc := range src {
		if doc == nil {
			continue
		}
		doc.Content = CleanText(doc.Content)
		cleanDocs = append(cleanDocs, doc)
	}
	return cleanDocs, nil
}

// CleanText 移除 Null 字节 (常见 PDF 解析错误) 和无效的 UTF-8 字符
func CleanText(content string) string {
	content = strings.ReplaceAll(content, "\x00", "")
	if utf8.ValidString(content) {
		return content
	}

	v := make([]rune, 0, len(content))
	for i, r := range content {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(content[i:])
			if size == 1 {
				continue
			}
		}
		v = append(v, r)
	}
	return string(v)
}
