package file

// Config holds the file store settings.
type Config struct {
	Path string `env:"STORE_FILE_PATH" envDefault:"totp_accounts.json"`
}
