// Package redis opens go-redis clients from a REDIS_URL and exposes the
// healthcheck and shutdown closures the web runtime expects.
//
//	client, err := redis.Open(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	checks["redis"] = redis.Healthcheck(client)
//	hooks = append(hooks, redis.Shutdown(client))
package redis
