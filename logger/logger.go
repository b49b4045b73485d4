package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New 按配置创建 logrus 实例，级别解析失败时回退到 info
func New(level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
	}
	return log
}
