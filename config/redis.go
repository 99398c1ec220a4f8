package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis opcionális: cím nélkül a gyorsítótár és a varázsló-piszkozatok
// kikapcsolva futnak (RDB nil marad, a hívók ellenőrzik).
func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		slog.Warn("A REDIS_ADDR nincs beállítva, a gyorsítótár kikapcsolva.")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("Nem sikerült csatlakozni a Redishez", "error", err)
		RDB = nil
		return
	}

	slog.Info("Sikeres Redis-kapcsolat.")
}
