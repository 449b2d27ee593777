// Package file stores accounts in a single JSON or YAML document on disk.
//
// The format follows the file extension: .yaml and .yml files are YAML,
// anything else is JSON indented with two spaces. A missing or empty file
// reads as no accounts. Save writes a temporary file next to the target and
// renames it into place, so readers never observe a half-written document.
//
// Watch reports changes made to the file by other processes:
//
//	s := file.New("totp_accounts.json")
//	go s.Watch(ctx, func() { keeper.Load(ctx) })
package file
