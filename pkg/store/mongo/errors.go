package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrFailedToLoad           = errors.New("failed to load accounts from mongo")
	ErrFailedToSave           = errors.New("failed to save accounts to mongo")
)
