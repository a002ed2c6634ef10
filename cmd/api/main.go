package main

import (
	"Lee_Village/internal/config"
	"Lee_Village/internal/handler"
	"Lee_Village/internal/pkg"
	"Lee_Village/internal/repository/mysql"
	"Lee_Village/internal/repository/redis"
	"Lee_Village/internal/router"
	"Lee_Village/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.AccessSecret != "" {
		pkg.AccessSecret = []byte(cfg.AccessSecret)
	}
	if cfg.RefreshSecret != "" {
		pkg.RefreshSecret = []byte(cfg.RefreshSecret)
	}

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		logger.Fatal("connect mysql", zap.Error(err))
	}

	// 自动建表（开发阶段 OK）
	if err := mysql.AutoMigrate(mysql.DB); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// 连接redis
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		logger.Fatal("connect redis", zap.Error(err))
	}
	defer redis.Close()

	emailSvc := service.NewEmailService(pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	h := router.Handlers{
		User:       handler.NewUserHandler(service.NewUserService(mysql.DB, emailSvc)),
		Email:      handler.NewEmailHandler(emailSvc),
		Village:    handler.NewVillageHandler(service.NewVillageService(mysql.DB)),
		Membership: handler.NewMembershipHandler(service.NewMembershipService(mysql.DB)),
		Post:       handler.NewPostHandler(service.NewPostService(mysql.DB)),
		Event:      handler.NewEventHandler(service.NewEventService(mysql.DB)),
	}

	r := router.InitRouter(logger, h)
	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
