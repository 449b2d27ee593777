package totp

// Config holds the code parameters applied to every account.
type Config struct {
	Period    int    `env:"TOTP_PERIOD" envDefault:"30"`
	Digits    int    `env:"TOTP_DIGITS" envDefault:"6"`
	Algorithm string `env:"TOTP_ALGORITHM" envDefault:"SHA1"`
}

// Params converts the config into generation parameters.
func (c Config) Params() Params {
	return Params{
		Period:    c.Period,
		Digits:    c.Digits,
		Algorithm: Algorithm(c.Algorithm),
	}
}
