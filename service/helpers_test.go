package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"license-hub/storage/sqlstore"
	"license-hub/vars"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlstore.InitDB(vars.SQLITE, ":memory:", false, nullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlstore.Close(db) })
	return db
}

func nullLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

// fakeExtractor 返回读取到的原始内容，便于断言
type fakeExtractor struct {
	err error
}

func (f *fakeExtractor) Extract(ctx context.Context, filename string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	return string(b), err
}

// fakeAnalyzer 记录最近一次调用参数
type fakeAnalyzer struct {
	summary string
	diff    string
	err     error

	gotText      string
	gotOriginal  string
	gotAmendment string
}

func (f *fakeAnalyzer) Summarize(ctx context.Context, text string) (string, error) {
	f.gotText = text
	return f.summary, f.err
}

func (f *fakeAnalyzer) Compare(ctx context.Context, original, amendment string) (string, error) {
	f.gotOriginal, f.gotAmendment = original, amendment
	return f.diff, f.err
}

type sentMail struct {
	to, subject, body string
}

// fakeSender 收集邮件；failFor 中的收件人返回错误
type fakeSender struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor map[string]bool
}

func (f *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[to] {
		return errors.New("smtp: 550 mailbox unavailable")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
