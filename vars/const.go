package vars

import (
	"os"
)

// GetEnv 获取环境变量，如果不存在则返回默认值
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

const (
	// 模型名称
	GPT41MINI = "gpt-4.1-mini"
	QWEN7B    = "qwen2.5:7b"

	// LLM 提供方
	OPENAI = "openai"
	OLLAMA = "ollama"

	// 数据库驱动
	SQLITE   = "sqlite"
	POSTGRES = "postgres"

	// 到期提醒：距离截止日期恰好 180 天
	ReminderLeadDays = 180
	ReminderSubject  = "License Expiry Reminder"
	ReminderBody     = "%s expires in 6 months"

	// 修订记录固定标题
	AmendmentTitle = "Amendment"

	// 会话 cookie
	SessionCookie = "session_token"
)

// 提示词（原样发送，模型输出按纯文本处理）
const (
	SUMMARY = `
Summarize this license agreement.
Extract:
- What rights are granted
- Territory
- Brand
- Licenser
- Start date
- End date or say 'Indefinite'
Return plain English.
`

	COMPARE = `
Compare ORIGINAL vs AMENDMENT.
List only what changed.
ORIGINAL:
{{.Original}}

AMENDMENT:
{{.Amendment}}
`
)
