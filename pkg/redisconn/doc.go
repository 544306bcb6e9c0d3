// Package redisconn establishes Redis connections with startup retry for
// components that share cached state across processes, such as the
// Redis-backed security level cache.
package redisconn
