package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisSingleton *redis.Client

// NewRedis starts an in-process Redis server and returns a client bound
// to it. The server lives for the whole suite.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		srv, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisSingleton = redis.NewClient(&redis.Options{Addr: srv.Addr()})
	})
	return redisSingleton
}

// ClearRedis flushes every key between scenarios.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}
