// Package redis stores accounts as a Redis list of JSON documents.
//
// Every account is one list element under a single key, in insertion order.
// Save replaces the whole list inside a MULTI/EXEC transaction so readers see
// either the old or the new list.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := redis.New(client, cfg.Key)
package redis
