package vault

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/otpvault/handler"
	"github.com/dmitrymomot/otpvault/pkg/account"
	"github.com/dmitrymomot/otpvault/pkg/importer"
	"github.com/dmitrymomot/otpvault/pkg/logger"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

const healthcheckTimeout = 3 * time.Second

type service struct {
	keeper   *account.Keeper
	importer *importer.Importer
	params   totp.Params
	log      *slog.Logger
	checks   map[string]Healthcheck
	now      func() time.Time
}

type addRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
	Note   string `json:"note"`
}

type nameRequest struct {
	Name string `path:"name"`
}

type noteRequest struct {
	Name string `path:"name" json:"-"`
	Note string `json:"note"`
}

type importRequest struct {
	Text  string `body:"text"`
	Image []byte `file:"image"`
}

// renderError renders err as JSON and logs server-side failures.
func (s *service) renderError(ctx handler.Context, err error) {
	_ = s.fail(ctx, err).Render(ctx.ResponseWriter(), ctx.Request())
}

func (s *service) fail(ctx context.Context, err error) handler.Response {
	err = httpError(err)

	var httpErr handler.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code >= http.StatusInternalServerError {
		s.log.ErrorContext(ctx, "request failed", logger.Error(err), logger.Component("vault"))
	}
	return handler.JSONError(err)
}

func (s *service) list(_ handler.Context, _ struct{}) handler.Response {
	accounts := s.keeper.List()
	return handler.JSON(viewsOf(accounts), handler.WithJSONMeta(map[string]any{"total": len(accounts)}))
}

func (s *service) add(ctx handler.Context, req addRequest) handler.Response {
	acc, err := account.New(req.Name, req.Secret, req.Note)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.keeper.Add(ctx, acc); err != nil {
		return s.fail(ctx, err)
	}

	s.log.InfoContext(ctx, "account added", logger.Account(acc.Name))
	return handler.JSON(viewOf(acc, 0), handler.WithJSONStatus(http.StatusCreated))
}

func (s *service) code(ctx handler.Context, req nameRequest) handler.Response {
	acc, err := s.keeper.Find(req.Name)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := totp.GenerateAt(acc.Secret, s.now(), s.params)
	if err != nil {
		return s.fail(ctx, err)
	}
	return handler.JSON(codeViewOf(acc.Name, c))
}

func (s *service) updateNote(ctx handler.Context, req noteRequest) handler.Response {
	acc, err := s.keeper.Find(req.Name)
	if err != nil {
		return s.fail(ctx, err)
	}

	acc.Note = strings.TrimSpace(req.Note)
	if err := s.keeper.UpdateNote(ctx, acc.Name, acc.Secret, acc.Note); err != nil {
		return s.fail(ctx, err)
	}
	return handler.JSON(viewOf(acc, 0))
}

func (s *service) delete(ctx handler.Context, req nameRequest) handler.Response {
	acc, err := s.keeper.Find(req.Name)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.keeper.Delete(ctx, acc.Name, acc.Secret); err != nil {
		return s.fail(ctx, err)
	}

	s.log.InfoContext(ctx, "account deleted", logger.Account(acc.Name))
	return handler.Empty()
}

func (s *service) importContent(ctx handler.Context, req importRequest) handler.Response {
	if s.importer == nil {
		return s.fail(ctx, importer.ErrNoScanner)
	}

	var (
		res account.ImportResult
		err error
	)
	switch {
	case len(req.Image) > 0:
		res, err = s.importer.FromImage(ctx, bytes.NewReader(req.Image))
	case strings.TrimSpace(req.Text) != "":
		res, err = s.importer.FromText(ctx, strings.TrimSpace(req.Text))
	default:
		return s.fail(ctx, ErrEmptyImport)
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	return handler.JSON(importViewOf(res))
}

func (s *service) health(ctx handler.Context, _ struct{}) handler.Response {
	checkCtx, cancel := context.WithTimeout(ctx, healthcheckTimeout)
	defer cancel()

	status := map[string]string{}
	healthy := true
	for _, name := range slices.Sorted(maps.Keys(s.checks)) {
		if err := s.checks[name](checkCtx); err != nil {
			healthy = false
			status[name] = err.Error()
			s.log.WarnContext(ctx, "healthcheck failed", logger.Component(name), logger.Error(err))
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		return handler.JSON(handler.JSONResponse{
			Data:  status,
			Error: &handler.ErrorDetail{Code: ErrUnhealthy.Key, Message: "one or more dependencies are unavailable"},
		}, handler.WithJSONStatus(ErrUnhealthy.Code))
	}
	return handler.JSON(status, handler.WithJSONMeta(map[string]any{"accounts": len(s.keeper.List())}))
}
