// Package account defines the TOTP account record and the Keeper service
// that owns the list of accounts on top of a pluggable Store.
//
// An Account is a display name, a Base32 secret and a free-text note. Two
// accounts are the same when both name and secret match; names alone are not
// unique. Accounts created through New are validated and carry the canonical
// secret form (upper-case, unpadded Base32).
//
// Keeper keeps the accounts in memory and writes the whole set back to the
// Store after every change. Stores never receive partial updates. A store
// that is missing or unreadable at load time yields an empty list instead of
// an error, so a broken file does not prevent the application from starting.
//
// # Usage
//
//	k := account.NewKeeper(store, account.WithLogger(log))
//	k.Load(ctx)
//
//	acc, err := account.New("alice@example.com", "JBSW Y3DP EHPK 3PXP", "Example")
//	if err != nil {
//	    // errors.Is(err, codec.ErrInvalidSecretEncoding) for a malformed secret
//	}
//	if err := k.Add(ctx, acc); errors.Is(err, account.ErrDuplicate) {
//	    // already stored
//	}
package account
