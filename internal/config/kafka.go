package config

import "time"

// Kafka configures the broker clients used by the relay and the event
// consumer.
type Kafka struct {
	Addresses []string `env:"KAFKA_ADDRESSES,required" envSeparator:","`
	Group     string   `env:"KAFKA_GROUP,required"`
	ClientID  string   `env:"KAFKA_CLIENT_ID" envDefault:"shop-admin"`
	// DeliveryTimeout bounds how long a produced record may stay unacknowledged.
	DeliveryTimeout time.Duration `env:"KAFKA_DELIVERY_TIMEOUT" envDefault:"10s"`
}
