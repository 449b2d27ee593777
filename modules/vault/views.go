package vault

import (
	"github.com/samber/lo"

	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

type accountView struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

func viewOf(acc account.Account, _ int) accountView {
	return accountView{Name: acc.Name, Note: acc.Note}
}

func viewsOf(accounts []account.Account) []accountView {
	if accounts == nil {
		return []accountView{}
	}
	return lo.Map(accounts, viewOf)
}

type codeView struct {
	Name             string `json:"name"`
	Code             string `json:"code"`
	SecondsRemaining int    `json:"seconds_remaining"`
	Period           int    `json:"period"`
}

func codeViewOf(name string, c totp.Code) codeView {
	return codeView{
		Name:             name,
		Code:             c.Value,
		SecondsRemaining: c.SecondsRemaining,
		Period:           c.Period,
	}
}

type importView struct {
	Added    []accountView `json:"added"`
	Existing []accountView `json:"existing"`
}

func importViewOf(res account.ImportResult) importView {
	return importView{
		Added:    viewsOf(res.Added),
		Existing: viewsOf(res.Existing),
	}
}
