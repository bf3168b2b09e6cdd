package users

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/reqcheck/pkg/async"
	"github.com/dmitrymomot/reqcheck/pkg/logger"
	"github.com/dmitrymomot/reqcheck/pkg/validator"
)

// Failure messages returned by the registration validators.
var (
	MsgEmailInUse           = validator.Message{Text: "E-mail already in use"}
	MsgEmailUnverifiable    = validator.Message{Text: "E-mail could not be verified"}
	MsgPasswordConfirmation = validator.Message{Text: "Password confirmation is incorrect"}
)

// commonPasswords are rejected outright by the signup chain.
var commonPasswords = []any{"123", "password", "god"}

// SignupChains validates POST /user1: the trimmed username must be an email,
// and the password must not be a common word, must be long enough and must
// contain a digit.
func SignupChains() []*validator.Chain {
	return validator.MustBuild(
		validator.Body("username").Trim().IsEmail(),
		validator.Body("password").
			Sensitive().
			Not().In(commonPasswords...).
			WithMessage("Do not use a common word as the password").
			Length(validator.LengthOptions{Min: 5}).
			WithMessage("must be at least 5 chars long").
			Matches(`\d`).
			WithCodedMessage("must contain a number", 1),
	)
}

// RegistrationChains validates POST /user2. The body email must be a valid
// address and is looked up in the registry asynchronously; the password must
// be present and match passwordConfirmation.
func RegistrationChains(svc *Service, log *slog.Logger) []*validator.Chain {
	if log == nil {
		log = logger.Discard()
	}

	return validator.MustBuild(
		validator.Body("email").Trim().IsEmail().CustomAsync(emailAvailable(svc, log)),
		validator.Body("password").Sensitive().NotEmpty().Custom(passwordConfirmed),
	)
}

func emailAvailable(svc *Service, log *slog.Logger) validator.CustomAsyncFunc {
	return func(ctx context.Context, v validator.Value, _ validator.Meta) *async.Future[bool] {
		email := v.String()
		return async.Go(ctx, func(ctx context.Context) (bool, error) {
			taken, err := svc.EmailTaken(ctx, email)
			if err != nil {
				log.ErrorContext(ctx, "email lookup failed",
					logger.Component("users"),
					logger.Error(err),
				)
				return false, MsgEmailUnverifiable
			}
			if taken {
				return false, MsgEmailInUse
			}
			return true, nil
		})
	}
}

func passwordConfirmed(_ context.Context, v validator.Value, meta validator.Meta) error {
	confirmation := validator.Absent()
	if meta.Request != nil {
		if raw, ok := meta.Request.Body["passwordConfirmation"]; ok {
			confirmation = validator.Present(raw)
		}
	}
	if v.IsPresent() != confirmation.IsPresent() || v.String() != confirmation.String() {
		return MsgPasswordConfirmation
	}
	return nil
}
