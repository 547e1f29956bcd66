package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/config"
	"github.com/Govind-Kandale-1/3Tier-website/internal/logger"
	"github.com/Govind-Kandale-1/3Tier-website/internal/mailer"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

func main() {
	/**********************************************
	 * 读取配置文件
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法读取配置: %v\n", err)
		os.Exit(1)
	}

	/**********************************************
	 * 创建 logger
	 **********************************************/
	log := logger.Init(cfg.Log.Level, cfg.Log.FilePath)

	if cfg.RabbitMQ.DSN == "" {
		log.Error().Msg("未配置 RABBITMQ_DSN")
		return
	}

	/**********************************************
	 * 加载邮件模板
	 **********************************************/
	composer, err := mailer.NewComposer(cfg.Email.TemplateDir, cfg.Email.SMTP.Username, cfg.Email.CompanyName)
	if err != nil {
		log.Error().Err(err).Str("dir", cfg.Email.TemplateDir).Msg("无法解析邮件模板")
		return
	}

	/**********************************************
	 * 创建邮件客户端
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		log.Error().Err(err).Msg("无法创建邮件客户端")
		return
	}
	defer client.Close()

	// 验证邮件客户端是否连接成功
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		log.Error().Err(err).Msg("无法连接到邮件服务器")
		return
	}

	/**********************************************
	 * 连接 RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		log.Error().Err(err).Msg("无法连接到 RabbitMQ")
		return
	}
	defer conn.Close()

	// 创建通道
	ch, err := conn.Channel()
	if err != nil {
		log.Error().Err(err).Msg("无法创建通道")
		return
	}
	defer ch.Close()

	// 声明队列，参数需要和 API 服务中的声明保持一致
	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.Queue,
		true,  // 持久化
		false, // 没有消费者时不自动删除
		false, // 允许多个消费者
		false,
		nil,
	)
	if err != nil {
		log.Error().Err(err).Msg("无法声明队列")
		return
	}

	// 监听 CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 消费消息
	msgs, err := ch.Consume(
		q.Name,
		"",    // 由 RabbitMQ 自动分配消费者标识
		false, // 手动确认
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Error().Err(err).Msg("无法消费消息")
		os.Exit(1)
	}

	// 用于关闭 goroutine 的上下文
	ctx, stop := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Warn().Msg("消息通道已关闭")
					return
				}
				log.Debug().Str("message", string(msg.Body)).Msg("收到消息")

				m, err := composer.Compose(msg.Body)
				if err != nil {
					// 无法处理的消息直接丢弃
					log.Error().Err(err).Msg("无法构建邮件")
					_ = msg.Nack(false, false)
					continue
				}

				// 发送邮件
				if err := client.DialAndSend(m); err != nil {
					log.Error().Err(err).Msg("邮件发送失败")
					_ = msg.Nack(false, true) // 将消息重新入队
					continue
				}

				// 确认消息
				_ = msg.Ack(false)
			}
		}
	}()

	// 等待 CTRL+C 信号
	log.Info().Str("queue", q.Name).Msg("等待消息...（按 CTRL+C 退出）")
	<-sigChan

	// 优雅退出
	log.Info().Msg("正在关闭 mail worker...")
	stop()
	wg.Wait()
	log.Info().Msg("mail worker 已成功关闭")
}
