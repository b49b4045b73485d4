package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"license-hub/storage/sqlstore"
	"license-hub/types"
	"license-hub/vars"
)

// Sender 邮件发送
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Reminder 一封待发送的到期提醒
type Reminder struct {
	AgreementID uint
	Title       string
	EndDate     time.Time
	To          string
}

// ReminderService 到期前恰好 180 天提醒协议上传人
type ReminderService struct {
	agreements *sqlstore.AgreementRepo
	users      *sqlstore.UserRepo
	sender     Sender
	fallbackTo string
	log        logrus.FieldLogger
}

func NewReminderService(agreements *sqlstore.AgreementRepo, users *sqlstore.UserRepo, sender Sender, fallbackTo string, log logrus.FieldLogger) *ReminderService {
	return &ReminderService{
		agreements: agreements,
		users:      users,
		sender:     sender,
		fallbackTo: fallbackTo,
		log:        log,
	}
}

// Due 计算 today 当天应发送的提醒：Active、有 end_date、end_date - today == 180 天
// 日期一律按 UTC 日历日计算，与库中存储的 end_date 一致
func (s *ReminderService) Due(ctx context.Context, today time.Time) ([]Reminder, error) {
	today = today.UTC()
	rows, err := s.agreements.ListExpiring(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expiring agreements failed: %w", err)
	}

	var reminders []Reminder
	for _, a := range rows {
		if a.EndDate == nil || types.DaysBetween(today, *a.EndDate) != vars.ReminderLeadDays {
			continue
		}
		to, err := s.recipient(ctx, a.Owner)
		if err != nil {
			return nil, err
		}
		if to == "" {
			s.log.WithField("id", a.ID).Warn("agreement has no owner, reminder skipped")
			continue
		}
		reminders = append(reminders, Reminder{
			AgreementID: a.ID,
			Title:       a.Title,
			EndDate:     *a.EndDate,
			To:          to,
		})
	}
	return reminders, nil
}

// Run 发送当天的提醒；单封失败只记录日志，继续发送其余的
func (s *ReminderService) Run(ctx context.Context, today time.Time) (int, error) {
	reminders, err := s.Due(ctx, today)
	if err != nil {
		return 0, err
	}

	sent := 0
	var errs []error
	for _, r := range reminders {
		log := s.log.WithFields(logrus.Fields{"id": r.AgreementID, "to": r.To})
		body := fmt.Sprintf(vars.ReminderBody, r.Title)
		if err := s.sender.Send(ctx, r.To, vars.ReminderSubject, body); err != nil {
			log.WithError(err).Error("send reminder failed")
			errs = append(errs, err)
			continue
		}
		log.Info("reminder sent")
		sent++
	}
	return sent, errors.Join(errs...)
}

// ExpireOverdue 把截止日期已过的 Active 协议标记为 Expired
func (s *ReminderService) ExpireOverdue(ctx context.Context, today time.Time) (int64, error) {
	return s.agreements.ExpireAgreements(ctx, today.UTC())
}

// recipient 优先用户邮箱，其次用户名本身（旧数据里用户名就是邮箱）
func (s *ReminderService) recipient(ctx context.Context, owner string) (string, error) {
	if owner == "" {
		return s.fallbackTo, nil
	}
	user, err := s.users.GetByUsername(ctx, owner)
	if errors.Is(err, sqlstore.ErrNotFound) {
		return owner, nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup owner %s failed: %w", owner, err)
	}
	if user.Email != "" {
		return user.Email, nil
	}
	return user.Username, nil
}
