package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/luthfirf17/catat-jasamu-api/internal/config"
)

const summaryTTL = 5 * time.Minute

// Cache menyimpan ringkasan keuangan per perusahaan di Redis.
// Semua operasi fail-soft: Redis mati tidak boleh mematikan API.
type Cache struct {
	rdb *redis.Client
}

func New(cfg *config.Config) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable (%v), summary cache disabled", err)
	}

	return &Cache{rdb: rdb}
}

func summaryKey(companyID uint, year, month int) string {
	return fmt.Sprintf("summary:%d:%04d-%02d", companyID, year, month)
}

func (c *Cache) GetSummary(ctx context.Context, companyID uint, year, month int, dest any) bool {
	raw, err := c.rdb.Get(ctx, summaryKey(companyID, year, month)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *Cache) SetSummary(ctx context.Context, companyID uint, year, month int, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, summaryKey(companyID, year, month), raw, summaryTTL).Err(); err != nil {
		log.Println("cache set error:", err)
	}
}

// InvalidateSummary drops every cached period of a company. Dipanggil pada
// setiap tulis booking/pembayaran/pengeluaran.
func (c *Cache) InvalidateSummary(ctx context.Context, companyID uint) {
	pattern := fmt.Sprintf("summary:%d:*", companyID)

	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Println("cache invalidate error:", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Println("cache scan error:", err)
	}
}
