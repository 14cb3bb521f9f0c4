package repository

// CacheRepository is a string key/value cache for rendered responses.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
