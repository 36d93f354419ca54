package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type PostgreSQLConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUsername string
	DBPassword string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type MidtransConfig struct {
	ServerKey string
}

type SMTPConfig struct {
	Sender     string
	Password   string
	Server     string
	Port       int
	AlertEmail string
}

type TracingConfig struct {
	CollectorHost string
}

// StoreSettings carries the pricing and receipt knobs that the settings
// service owns. The cashier core snapshots them once per operation.
type StoreSettings struct {
	DiscountPercent     decimal.Decimal
	TaxPercent          decimal.Decimal
	Currency            string
	ReceiptNumberFormat string
}

type Config struct {
	ServicePort      string
	MetricsPort      string
	PostgreSQLConfig PostgreSQLConfig
	KafkaConfig      KafkaConfig
	MidtransConfig   MidtransConfig
	SMTPConfig       SMTPConfig
	TracingConfig    TracingConfig
	StoreSettings    StoreSettings
	JWTSecret        string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		MidtransConfig: MidtransConfig{
			ServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		},
		SMTPConfig: SMTPConfig{
			Sender:     os.Getenv("SMTP_SENDER"),
			Password:   os.Getenv("SMTP_PASSWORD"),
			Server:     os.Getenv("SMTP_SERVER"),
			AlertEmail: os.Getenv("LOW_STOCK_ALERT_EMAIL"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	if err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err == nil {
		conf.SMTPConfig.Port = smtpPort
	}

	conf.StoreSettings = StoreSettings{
		DiscountPercent:     decimalFromEnv("STORE_DISCOUNT_PERCENT"),
		TaxPercent:          decimalFromEnv("STORE_TAX_PERCENT"),
		Currency:            os.Getenv("STORE_CURRENCY"),
		ReceiptNumberFormat: os.Getenv("RECEIPT_NUMBER_FORMAT"),
	}

	if conf.StoreSettings.ReceiptNumberFormat == "" {
		conf.StoreSettings.ReceiptNumberFormat = "INV-{YYYY}{MM}{DD}-{SEQ:6}"
	}

	return &conf
}

func decimalFromEnv(key string) decimal.Decimal {
	value, err := decimal.NewFromString(os.Getenv(key))
	if err != nil {
		return decimal.Zero
	}

	return value
}
