package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"license-hub/api/handler"
	"license-hub/api/middleware"
	"license-hub/api/router"
	"license-hub/job"
	"license-hub/logger"
	"license-hub/logic/chat"
	"license-hub/logic/ingestion/extract"
	"license-hub/logic/notify"
	"license-hub/logic/summary"
	"license-hub/service"
	"license-hub/storage/sqlstore"
	"license-hub/vars"
	"license-hub/web"
)

func main() {
	ctx := context.Background()

	// 1. 配置与日志
	cfg, err := vars.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config failed")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	debug := log.IsLevelEnabled(logrus.DebugLevel)

	// 2. 初始化 DB
	db, err := sqlstore.InitDB(cfg.DBDriver, cfg.DBDSN, debug, log)
	if err != nil {
		log.WithError(err).Fatal("init db failed")
	}
	defer sqlstore.Close(db)

	agreementRepo := sqlstore.NewAgreementRepo(db)
	userRepo := sqlstore.NewUserRepo(db)

	// 3. 初始化 LLM Model 与文本提取
	chatModel, err := chat.CreateChatModel(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("init chat model failed")
	}
	extractor, err := extract.NewExtractor(ctx)
	if err != nil {
		log.WithError(err).Fatal("init extractor failed")
	}

	// 4. 初始化 Service (业务层)
	authSvc := service.NewAuthService(userRepo, cfg.SessionTTL, log)
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if _, err := authSvc.EnsureUser(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
			log.WithError(err).Fatal("seed admin user failed")
		}
	}
	agreementSvc := service.NewAgreementService(agreementRepo, extractor, summary.NewSummarizer(chatModel), log)
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailSender, cfg.EmailPassword)
	reminderSvc := service.NewReminderService(agreementRepo, userRepo, mailer, cfg.ReminderFallbackTo, log)

	// 启动定时任务
	scheduler, err := job.StartCronJob(cfg, job.NewJobs(reminderSvc, authSvc, log))
	if err != nil {
		log.WithError(err).Fatal("start cron failed")
	}

	// 5. 初始化 Handler (API 层)
	maxUpload := cfg.UploadMaxMB << 20
	authH := handler.NewAuthHandler(authSvc, cfg.SessionTTL, cfg.CookieSecure, log)
	agreementH := handler.NewAgreementHandler(agreementSvc, maxUpload, log)
	apiH := handler.NewAPIHandler(agreementSvc)

	tmpl, err := web.Templates()
	if err != nil {
		log.WithError(err).Fatal("parse templates failed")
	}

	// 6. 启动 Web Server
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))
	r.MaxMultipartMemory = maxUpload
	r.SetHTMLTemplate(tmpl)
	router.RegisterRoutes(r, authSvc, authH, agreementH, apiH)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	// 先停 HTTP，再等正在执行的定时任务结束
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("cron jobs still running at exit")
	}
	log.Info("server stopped")
}
