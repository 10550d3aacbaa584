// Package assistant answers free-text questions about a record by delegating to a language-model provider.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/trezcool/trackademics/core"
)

type (
	// Provider is a language model able to answer a question given some context.
	Provider interface {
		Ask(ctx context.Context, background, question string) (string, error)
	}

	Service interface {
		Ask(ctx context.Context, q Question) (Answer, error)
	}

	Question struct {
		Context  string `json:"context"`
		Question string `json:"question" validate:"required,notblank"`
	}

	Answer struct {
		Answer string `json:"answer"`
	}

	// ExternalServiceError is a provider failure; its message is the provider's, verbatim.
	ExternalServiceError struct {
		Err error
	}

	service struct {
		provider Provider
		answers  *cache.Cache
		logger   core.Logger
	}
)

func (err *ExternalServiceError) Error() string { return err.Err.Error() }

func (err *ExternalServiceError) Unwrap() error { return err.Err }

func (q *Question) Validate(validate *validator.Validate) error {
	q.Context = strings.TrimSpace(q.Context)
	q.Question = core.CleanString(q.Question)
	return validate.Struct(q)
}

// RecordContext returns the context the provider gets for a question about a record.
func RecordContext(title, description string) string {
	return fmt.Sprintf("Title: %s\nDescription: %s", title, description)
}

var _ Service = (*service)(nil)

// NewService returns an assistant remembering its answers for `ttl`; a non-positive ttl disables the cache.
func NewService(provider Provider, ttl time.Duration, logger core.Logger) Service {
	svc := &service{provider: provider, logger: logger}
	if ttl > 0 {
		svc.answers = cache.New(ttl, 2*ttl)
	}
	return svc
}

func (svc *service) Ask(ctx context.Context, q Question) (Answer, error) {
	if strings.TrimSpace(q.Question) == "" {
		msg := "this field cannot be blank"
		return Answer{}, core.NewValidationError(errors.New("question: "+msg), core.FieldError{Field: "question", Error: msg})
	}

	key := cacheKey(q)
	if svc.answers != nil {
		if ans, found := svc.answers.Get(key); found {
			return Answer{Answer: ans.(string)}, nil
		}
	}

	ans, err := svc.provider.Ask(ctx, q.Context, q.Question)
	if err != nil {
		if svc.logger != nil {
			svc.logger.Warn("assistant provider failed", err)
		}
		return Answer{}, &ExternalServiceError{Err: err}
	}

	if svc.answers != nil {
		svc.answers.Set(key, ans, cache.DefaultExpiration)
	}
	return Answer{Answer: ans}, nil
}

func cacheKey(q Question) string {
	return q.Context + "\x00" + q.Question
}
