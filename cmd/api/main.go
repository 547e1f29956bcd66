package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/config"
	"github.com/Govind-Kandale-1/3Tier-website/internal/handler"
	"github.com/Govind-Kandale-1/3Tier-website/internal/logger"
	"github.com/Govind-Kandale-1/3Tier-website/internal/repository"
	"github.com/Govind-Kandale-1/3Tier-website/internal/service"
	"github.com/Govind-Kandale-1/3Tier-website/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

func main() {
	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法加载配置: %v\n", err)
		os.Exit(1)
	}

	/**********************************************
	 * 创建 logger
	 **********************************************/
	log := logger.Init(cfg.Log.Level, cfg.Log.FilePath)
	ctx := log.WithContext(context.Background())

	/**********************************************
	 * 连接数据库
	 **********************************************/
	repo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Database.Driver).Msg("无法打开数据库")
		return
	}
	defer closeRepo()

	/**********************************************
	 * 连接 rabbitmq
	 **********************************************/
	var publisher service.Publisher
	if cfg.RabbitMQ.DSN != "" {
		conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
		if err != nil {
			log.Error().Err(err).Msg("无法连接到 rabbitmq")
			return
		}
		defer conn.Close()

		// 建立通道
		ch, err := conn.Channel()
		if err != nil {
			log.Error().Err(err).Msg("无法建立通道")
			return
		}
		defer ch.Close()

		// 声明队列
		_, err = ch.QueueDeclare(
			cfg.RabbitMQ.Queue,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			log.Error().Err(err).Msg("无法声明队列")
			return
		}

		publisher = service.NewAMQPPublisher(ch, cfg.RabbitMQ.Queue, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
	} else {
		log.Warn().Msg("未配置 RABBITMQ_DSN，不会发送欢迎邮件")
	}

	/**********************************************
	 * 创建 service
	 **********************************************/
	validator, err := utils.NewEmployeeValidator()
	if err != nil {
		log.Error().Err(err).Msg("无法创建校验器")
		return
	}
	svc := service.NewEmployeeService(repo, validator, publisher)

	/**********************************************
	 * 创建 handler
	 **********************************************/
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, err := handler.NewHandler(cfg, svc, registry)
	if err != nil {
		log.Error().Err(err).Msg("无法创建 handler")
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * 启动 HTTP 服务器
	 **********************************************/
	errLog := log.Level(zerolog.ErrorLevel)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     stdlog.New(errLog, "", 0),
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("driver", cfg.Database.Driver).Msg("正在启动服务器...")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("无法启动服务器")
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Info().Msg("正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("关闭服务器失败")
	}
	log.Info().Msg("服务器已成功关闭")
}
