package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
	ErrFailedToLoad                 = errors.New("failed to load accounts from redis")
	ErrFailedToSave                 = errors.New("failed to save accounts to redis")
)
