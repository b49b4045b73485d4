package extract

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/components/document/parser"

	docparser "license-hub/logic/ingestion/parser"
	"license-hub/logic/ingestion/processors"
)

// Extractor 按文件扩展名选择解析器，把上传文件转成纯文本
type Extractor struct {
	parser parser.Parser
}

func NewExtractor(ctx context.Context) (*Extractor, error) {
	// 按页解析，拼接时每页一行
	pdfParser, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: true})
	if err != nil {
		return nil, fmt.Errorf("create pdf parser failed: %w", err)
	}

	extParser, err := parser.NewExtParser(ctx, &parser.ExtParserConfig{
		Parsers: map[string]parser.Parser{
			docparser.ExtPDF:  pdfParser,
			docparser.ExtDOCX: &docparser.DocxParser{},
		},
		FallbackParser: docparser.EmptyParser{},
	})
	if err != nil {
		return nil, fmt.Errorf("create ext parser failed: %w", err)
	}
	return &Extractor{parser: extParser}, nil
}

// Extract 返回 PDF 各页 / DOCX 各段落以换行拼接的文本；其他扩展名返回空字符串
// 损坏或加密的文件直接返回解析器的错误
func (e *Extractor) Extract(ctx context.Context, filename string, r io.Reader) (string, error) {
	// 扩展名大小写不敏感
	uri := strings.ToLower(filepath.Base(filename))

	docs, err := e.parser.Parse(ctx, r, parser.WithURI(uri))
	if err != nil {
		return "", fmt.Errorf("parse %s failed: %w", filename, err)
	}
	docs, err = processors.Processor(ctx, docs)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, doc.Content)
	}
	return strings.Join(parts, "\n"), nil
}
