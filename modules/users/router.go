package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/reqcheck/handler"
	"github.com/dmitrymomot/reqcheck/pkg/binder"
	"github.com/dmitrymomot/reqcheck/pkg/logger"
	"github.com/dmitrymomot/reqcheck/pkg/validator"
)

// SignupRequest is the body of POST /user1.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /user2.
type RegisterRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// Module serves the users routes.
//
//	svc := users.NewService(users.NewMemoryStorage())
//	r.Mount("/users", users.NewModule(svc, log).Handle())
type Module struct {
	svc          *Service
	log          *slog.Logger
	bind         validator.BindFunc
	errorHandler handler.ErrorHandler[handler.Context]
	signup       []*validator.Chain
	register     []*validator.Chain
}

func NewModule(svc *Service, log *slog.Logger) *Module {
	if log == nil {
		log = logger.Discard()
	}
	return &Module{
		svc:          svc,
		log:          log,
		bind:         binder.Request(),
		errorHandler: handler.NewErrorHandler(log),
		signup:       SignupChains(),
		register:     RegistrationChains(svc, log),
	}
}

func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	r.HandleFunc("/alltypes", handler.Wrap(m.allTypes))

	r.With(validator.Middleware(m.bind, m.signup, validator.WithLogger(m.log))).
		Post("/user1", handler.Wrap(m.signupUser,
			handler.WithBinder[handler.Context, SignupRequest](handler.BindValidated()),
			handler.WithErrorHandler[handler.Context, SignupRequest](m.errorHandler),
			handler.WithDecorators(handler.RequireValid[handler.Context, SignupRequest]()),
		))

	r.With(validator.Middleware(m.bind, m.register, validator.WithLogger(m.log))).
		Post("/user2", handler.Wrap(m.registerUser,
			handler.WithBinder[handler.Context, RegisterRequest](handler.BindValidated()),
			handler.WithErrorHandler[handler.Context, RegisterRequest](m.errorHandler),
			handler.WithDecorators(handler.RequireValid[handler.Context, RegisterRequest]()),
		))

	return r
}

func (m *Module) allTypes(_ handler.Context, _ struct{}) handler.Response {
	return handler.HTML("<h1>hello World!</h1>")
}

func (m *Module) signupUser(ctx handler.Context, req SignupRequest) handler.Response {
	if _, err := m.svc.Register(ctx, req.Username, req.Password); err != nil {
		return registrationError(err)
	}
	return handler.JSON(map[string]string{"username": req.Username})
}

func (m *Module) registerUser(ctx handler.Context, req RegisterRequest) handler.Response {
	u, err := m.svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		return registrationError(err)
	}
	return handler.JSON(map[string]string{"email": u.Email}, handler.WithJSONStatus(http.StatusCreated))
}

// registrationError maps a lost race on the same email to 409; the async
// check already rejects emails that were taken before the request.
func registrationError(err error) handler.Response {
	if errors.Is(err, ErrEmailAlreadyExists) {
		return handler.JSONError(handler.ErrConflict)
	}
	return handler.JSONError(err)
}
