package alert

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alimikegami/point-of-sales/cashier-service/config"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/domain"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/dto"
	"github.com/alimikegami/point-of-sales/cashier-service/internal/service"
	"github.com/alimikegami/point-of-sales/cashier-service/pkg/utils"
	"github.com/segmentio/kafka-go"
	"gopkg.in/gomail.v2"
)

type LowStockAlerter struct {
	kafkaProducer *kafka.Conn
	config        *config.Config
}

func CreateLowStockAlerter(kafkaProducer *kafka.Conn, config *config.Config) service.ProductAlerter {
	return &LowStockAlerter{
		kafkaProducer: kafkaProducer,
		config:        config,
	}
}

// CheckAndNotify publishes a low_stock event and mails the store contact
// when a product has dropped to its minimum stock threshold.
func (a *LowStockAlerter) CheckAndNotify(ctx context.Context, product domain.Product) (err error) {
	if product.Stock > product.MinStock {
		return nil
	}

	kafkaMsg := dto.KafkaMessage{
		EventType: "low_stock",
		Data: dto.LowStockEvent{
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			Stock:     product.Stock,
			MinStock:  product.MinStock,
		},
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	if a.kafkaProducer != nil {
		_, err = a.kafkaProducer.WriteMessages(kafka.Message{
			Key:   []byte(product.SKU),
			Value: jsonMsg,
		})
		if err != nil {
			return err
		}
	}

	if a.config.SMTPConfig.AlertEmail == "" {
		return nil
	}

	message := gomailMessage(a.config.SMTPConfig.Sender, a.config.SMTPConfig.AlertEmail, product)

	return utils.SendEmail(message, a.config.SMTPConfig.Sender, a.config.SMTPConfig.Password, a.config.SMTPConfig.Server, a.config.SMTPConfig.Port)
}

func gomailMessage(sender string, recipient string, product domain.Product) *gomail.Message {
	message := gomail.NewMessage()
	message.SetHeader("From", sender)
	message.SetHeader("To", recipient)
	message.SetHeader("Subject", fmt.Sprintf("Low stock: %s", product.Name))
	message.SetBody("text/plain", fmt.Sprintf("Product %s (%s) is down to %d units, at or below the minimum of %d. Please restock.", product.Name, product.SKU, product.Stock, product.MinStock))

	return message
}
