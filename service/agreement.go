package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"license-hub/storage/sqlstore"
	"license-hub/types"
	"license-hub/vars"
)

var (
	ErrMissingFile  = errors.New("no file uploaded")
	ErrBaseNotFound = errors.New("base agreement not found or obsolete")
)

// TextExtractor 上传文件 -> 纯文本
type TextExtractor interface {
	Extract(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Analyzer 摘要与修订对比
type Analyzer interface {
	Summarize(ctx context.Context, text string) (string, error)
	Compare(ctx context.Context, original, amendment string) (string, error)
}

type AgreementService struct {
	repo      *sqlstore.AgreementRepo
	extractor TextExtractor
	analyzer  Analyzer
	log       logrus.FieldLogger
}

// 构造函数：依赖注入
func NewAgreementService(repo *sqlstore.AgreementRepo, extractor TextExtractor, analyzer Analyzer, log logrus.FieldLogger) *AgreementService {
	return &AgreementService{
		repo:      repo,
		extractor: extractor,
		analyzer:  analyzer,
		log:       log,
	}
}

// ScanAgreement 提取文本并生成摘要，结果交给页面供用户编辑，不落库
func (s *AgreementService) ScanAgreement(ctx context.Context, filename string, file io.Reader) (string, error) {
	if file == nil || filename == "" {
		return "", ErrMissingFile
	}
	log := s.log.WithField("file", filename)

	start := time.Now()
	text, err := s.extractor.Extract(ctx, filename, file)
	if err != nil {
		log.WithError(err).Error("extract text failed")
		return "", err
	}
	log.WithFields(logrus.Fields{"chars": len(text), "took": time.Since(start)}).Debug("text extracted")

	start = time.Now()
	summary, err := s.analyzer.Summarize(ctx, text)
	if err != nil {
		log.WithError(err).Error("summarize failed")
		return "", err
	}
	log.WithField("took", time.Since(start)).Info("agreement scanned")
	return summary, nil
}

// SaveAgreement 新协议一律为 Active；indefinite 时不写 end_date
func (s *AgreementService) SaveAgreement(ctx context.Context, owner string, draft types.AgreementDraft) (*sqlstore.Agreement, error) {
	startDate := types.DateOnly(draft.StartDate)
	var endDate *time.Time
	if !draft.Indefinite {
		d := types.DateOnly(draft.EndDate)
		endDate = &d
	}

	agreement := &sqlstore.Agreement{
		Title:      draft.Title,
		Country:    draft.Country,
		Brand:      draft.Brand,
		Licenser:   draft.Licenser,
		Status:     types.StatusActive,
		StartDate:  &startDate,
		EndDate:    endDate,
		Indefinite: draft.Indefinite,
		Summary:    draft.Summary,
		Owner:      owner,
	}
	if err := s.repo.Create(ctx, agreement); err != nil {
		return nil, fmt.Errorf("save agreement failed: %w", err)
	}
	s.log.WithFields(logrus.Fields{"id": agreement.ID, "owner": owner}).Info("agreement saved")
	return agreement, nil
}

// BaseAgreements 修订页面的下拉选项
func (s *AgreementService) BaseAgreements(ctx context.Context) ([]sqlstore.Agreement, error) {
	return s.repo.ListBase(ctx)
}

// ScanAmendment 用原协议已保存的摘要与修订文本做对比
func (s *AgreementService) ScanAmendment(ctx context.Context, baseID uint, filename string, file io.Reader) (string, error) {
	if file == nil || filename == "" {
		return "", ErrMissingFile
	}
	base, err := s.baseAgreement(ctx, baseID)
	if err != nil {
		return "", err
	}
	log := s.log.WithFields(logrus.Fields{"file": filename, "base_id": baseID})

	text, err := s.extractor.Extract(ctx, filename, file)
	if err != nil {
		log.WithError(err).Error("extract amendment failed")
		return "", err
	}
	diff, err := s.analyzer.Compare(ctx, base.Summary, text)
	if err != nil {
		log.WithError(err).Error("compare failed")
		return "", err
	}
	log.Info("amendment scanned")
	return diff, nil
}

// SaveAmendment 修订记录只带差异摘要和 parent_id，不复制原协议的元数据
func (s *AgreementService) SaveAmendment(ctx context.Context, owner string, draft types.AmendmentDraft) (*sqlstore.Agreement, error) {
	base, err := s.baseAgreement(ctx, draft.BaseID)
	if err != nil {
		return nil, err
	}

	parentID := base.ID
	amendment := &sqlstore.Agreement{
		Title:    vars.AmendmentTitle,
		Status:   types.StatusActive,
		Summary:  draft.Diff,
		ParentID: &parentID,
		Owner:    owner,
	}
	if err := s.repo.Create(ctx, amendment); err != nil {
		return nil, fmt.Errorf("save amendment failed: %w", err)
	}
	s.log.WithFields(logrus.Fields{"id": amendment.ID, "parent_id": parentID, "owner": owner}).Info("amendment saved")
	return amendment, nil
}

func (s *AgreementService) List(ctx context.Context, keyword string) ([]sqlstore.Agreement, error) {
	return s.repo.List(ctx, keyword)
}

func (s *AgreementService) Get(ctx context.Context, id uint) (*sqlstore.Agreement, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus 只接受四个枚举值，立即写库
func (s *AgreementService) UpdateStatus(ctx context.Context, id uint, status string) error {
	st, err := types.ParseStatus(status)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"id": id, "status": st}).Info("status updated")
	return nil
}

func (s *AgreementService) baseAgreement(ctx context.Context, id uint) (*sqlstore.Agreement, error) {
	base, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sqlstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: id=%d", ErrBaseNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if base.Obsolete {
		return nil, fmt.Errorf("%w: id=%d", ErrBaseNotFound, id)
	}
	return base, nil
}
