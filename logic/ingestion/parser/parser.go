package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"
)

// 扩展名为 key，供 parser.ExtParser 分发
const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"
)

const docxBody = "word/document.xml"

var ErrNoDocumentBody = errors.New("docx: word/document.xml not found")

// DocxParser 读取 .docx 正文段落，每个段落一行
type DocxParser struct{}

var _ parser.Parser = (*DocxParser)(nil)

func (p *DocxParser) Parse(ctx context.Context, reader io.Reader, opts ...parser.Option) ([]*schema.Document, error) {
	commonOpts := parser.GetCommonOptions(nil, opts...)

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("docx: read failed: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("docx: open archive failed: %w", err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBody {
			body = f
			break
		}
	}
	if body == nil {
		return nil, ErrNoDocumentBody
	}

	rc, err := body.Open()
	if err != nil {
		return nil, fmt.Errorf("docx: open body failed: %w", err)
	}
	defer rc.Close()

	paragraphs, err := readParagraphs(rc)
	if err != nil {
		return nil, err
	}

	meta := make(map[string]any, len(commonOpts.ExtraMeta))
	for k, v := range commonOpts.ExtraMeta {
		meta[k] = v
	}
	return []*schema.Document{{
		Content:  strings.Join(paragraphs, "\n"),
		MetaData: meta,
	}}, nil
}

// WordprocessingML 命名空间（Transitional / Strict）
const (
	nsWordML       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsWordMLStrict = "http://purl.oclc.org/ooxml/wordprocessingml/main"
)

// 这些子树里的段落（文本框、图形、图表、兼容性回退）不属于正文段落，整体跳过
var skippedElements = map[string]bool{
	"drawing":          true,
	"pict":             true,
	"object":           true,
	"txbxContent":      true,
	"AlternateContent": true,
}

func isWordML(n xml.Name) bool {
	return n.Space == nsWordML || n.Space == nsWordMLStrict
}

// readParagraphs 按 <w:p> 收集文本；<w:tab/> 记为制表符，<w:br/>、<w:cr/> 记为换行
// 段落可以嵌套（例如文本框），用栈保存外层段落已收集的内容
func readParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		paragraphs []string
		stack      []*strings.Builder
		inText     bool
	)
	top := func() *strings.Builder {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("docx: decode body failed: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skippedElements[t.Name.Local] {
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("docx: decode body failed: %w", err)
				}
				continue
			}
			if !isWordML(t.Name) {
				continue
			}
			cur := top()
			switch t.Name.Local {
			case "p":
				stack = append(stack, &strings.Builder{})
			case "t":
				inText = true
			case "tab":
				if cur != nil {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if cur != nil {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if !isWordML(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "p":
				if cur := top(); cur != nil {
					paragraphs = append(paragraphs, cur.String())
					stack = stack[:len(stack)-1]
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if cur := top(); cur != nil && inText {
				cur.Write(t)
			}
		}
	}
	return paragraphs, nil
}

// EmptyParser 未识别的扩展名走这里，返回空结果而不是报错
type EmptyParser struct{}

var _ parser.Parser = EmptyParser{}

func (EmptyParser) Parse(ctx context.Context, reader io.Reader, opts ...parser.Option) ([]*schema.Document, error) {
	return nil, nil
}
