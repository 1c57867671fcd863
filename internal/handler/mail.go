package handler

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

// publishMailMessages 把若干封邮件依次发送到消息队列。
// 调度操作的通知策略是统一的：任何一封邮件入队失败都会使整个操作报告失败。
func (h *Handler) publishMailMessages(messages ...domain.MailMessage) error {
	for _, message := range messages {
		mailData, err := json.Marshal(message)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)

		err = h.mailChannel.PublishWithContext(
			ctx,
			"",
			"email_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        mailData,
			},
		)
		cancel()

		if err != nil {
			return err
		}
	}

	return nil
}
