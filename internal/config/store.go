package config

import (
	"fmt"
	"strings"
	"time"
)

// StoreDriver selects the document store backend.
type StoreDriver uint8

const (
	StoreDriverMongo StoreDriver = iota
	StoreDriverPostgres
	StoreDriverMemory
)

func (d StoreDriver) String() string {
	switch d {
	case StoreDriverMongo:
		return "mongo"
	case StoreDriverPostgres:
		return "postgres"
	case StoreDriverMemory:
		return "memory"
	default:
		return fmt.Sprintf("StoreDriver(%d)", d)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *StoreDriver) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "mongo", "mongodb":
		*d = StoreDriverMongo
	case "postgres", "postgresql":
		*d = StoreDriverPostgres
	case "memory":
		*d = StoreDriverMemory
	default:
		return fmt.Errorf("unknown store driver: %s", text)
	}
	return nil
}

func (d StoreDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Store struct {
	Driver StoreDriver `env:"STORE_DRIVER" envDefault:"mongo"`
	// OpTimeout bounds every single store call.
	OpTimeout time.Duration `env:"STORE_OP_TIMEOUT" envDefault:"5s"`
}

type Mongo struct {
	URI            string        `env:"MONGO_URI,required"`
	DB             string        `env:"MONGO_DB" envDefault:"shopAdmin"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize    uint64        `env:"MONGO_MAX_POOL_SIZE" envDefault:"50"`
}
