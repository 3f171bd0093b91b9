// Package cache provides a small generic TTL cache with in-memory and Redis
// backends, plus [GetOrSet] for read-through caching with stampede protection.
//
//	c := cache.NewMemory[[]Link](5 * time.Minute)
//	links, err := cache.GetOrSet(ctx, c, "nav", 0, loadLinks)
package cache
