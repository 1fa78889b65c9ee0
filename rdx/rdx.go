package rdx

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"tripbook/globals"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Println("Redis ping failed:", err)
	}
}
