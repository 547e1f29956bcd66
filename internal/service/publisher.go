package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.MailMessage) error { return nil }

// AMQPChannel 是 *amqp.Channel 中发布消息用到的部分
type AMQPChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher 把邮件消息投递到 rabbitmq 的持久化队列
type AMQPPublisher struct {
	ch      AMQPChannel
	queue   string
	timeout time.Duration
}

func NewAMQPPublisher(ch AMQPChannel, queue string, timeout time.Duration) *AMQPPublisher {
	return &AMQPPublisher{
		ch:      ch,
		queue:   queue,
		timeout: timeout,
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	// 请求结束后仍然要完成投递
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
