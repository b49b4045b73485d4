package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"license-hub/vars"
)

// 会话清理每小时一次
const sessionPurgeSpec = "@hourly"

type ReminderRunner interface {
	Run(ctx context.Context, today time.Time) (int, error)
	ExpireOverdue(ctx context.Context, today time.Time) (int64, error)
}

type SessionPurger interface {
	PurgeSessions(ctx context.Context) (int64, error)
}

// Jobs 定时任务实现，单独拆出来便于测试
type Jobs struct {
	reminders ReminderRunner
	sessions  SessionPurger
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewJobs(reminders ReminderRunner, sessions SessionPurger, log logrus.FieldLogger) *Jobs {
	return &Jobs{reminders: reminders, sessions: sessions, log: log, now: time.Now}
}

// SendReminders 发送今天到期前 180 天的提醒
func (j *Jobs) SendReminders() {
	ctx := context.Background()
	sent, err := j.reminders.Run(ctx, j.now().UTC())
	if err != nil {
		j.log.WithError(err).WithField("sent", sent).Error("[Cron] reminder run finished with errors")
		return
	}
	j.log.WithField("sent", sent).Info("[Cron] reminders sent")
}

// ExpireAgreements 把已过期的 Active 协议改为 Expired
func (j *Jobs) ExpireAgreements() {
	rows, err := j.reminders.ExpireOverdue(context.Background(), j.now().UTC())
	if err != nil {
		j.log.WithError(err).Error("[Cron] expire agreements failed")
		return
	}
	j.log.WithField("rows", rows).Info("[Cron] expired agreements updated")
}

func (j *Jobs) PurgeSessions() {
	rows, err := j.sessions.PurgeSessions(context.Background())
	if err != nil {
		j.log.WithError(err).Error("[Cron] purge sessions failed")
		return
	}
	if rows > 0 {
		j.log.WithField("rows", rows).Debug("[Cron] expired sessions purged")
	}
}

// StartCronJob 按配置注册任务并启动调度器，调用方负责 Stop
func StartCronJob(cfg *vars.Config, jobs *Jobs) (*cron.Cron, error) {
	c := cron.New()

	if cfg.ReminderEnabled {
		if _, err := c.AddFunc(cfg.ReminderCron, jobs.SendReminders); err != nil {
			return nil, fmt.Errorf("invalid REMINDER_CRON %q: %w", cfg.ReminderCron, err)
		}
	}
	// 与提醒同一时间执行
	if cfg.AutoExpire {
		if _, err := c.AddFunc(cfg.ReminderCron, jobs.ExpireAgreements); err != nil {
			return nil, fmt.Errorf("invalid REMINDER_CRON %q: %w", cfg.ReminderCron, err)
		}
	}
	if _, err := c.AddFunc(sessionPurgeSpec, jobs.PurgeSessions); err != nil {
		return nil, err
	}

	c.Start()
	jobs.log.WithFields(logrus.Fields{
		"reminder":    cfg.ReminderEnabled,
		"auto_expire": cfg.AutoExpire,
		"entries":     len(c.Entries()),
	}).Info("cron started")
	return c, nil
}
