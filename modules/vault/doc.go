// Package vault exposes the account keeper over HTTP.
//
// Routes (JSON unless noted):
//
//	GET    /accounts               list accounts (secrets are never returned)
//	POST   /accounts               add {name, secret, note}
//	GET    /accounts/{name}/code   current code and seconds remaining
//	PATCH  /accounts/{name}/note   replace the note {note}
//	DELETE /accounts/{name}        delete the account
//	POST   /import                 text/plain URI or multipart "image" upload
//	GET    /healthz                store health
//
// Mount it on any chi router:
//
//	r.Mount("/", vault.Router(vault.RouterOptions{
//		Keeper:   keeper,
//		Importer: imp,
//		Params:   totpCfg.Params(),
//		Logger:   log,
//	}))
package vault
