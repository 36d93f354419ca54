package dto

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type LowStockEvent struct {
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
	MinStock  int64  `json:"min_stock"`
}

type TransactionEvent struct {
	TransactionID int64  `json:"transaction_id"`
	InvoiceNumber string `json:"invoice_number"`
	Status        string `json:"status"`
	Total         string `json:"total"`
}
