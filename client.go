package appkit

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/reown-com/appkit-go/auth"
	"github.com/reown-com/appkit-go/auth/store"
	"github.com/reown-com/appkit-go/auth/transport"
)

// API environments.
const (
	EnvironmentProduction = "production"
	EnvironmentSandbox    = "sandbox"
)

const (
	productionBaseURL = "https://api.reown.com"
	sandboxBaseURL    = "https://api.sandbox.reown.com"
)

// Options
//
// defines options for configuring an AppKit client.
type Options struct {
	APIKey         string `yaml:"apiKey" json:"apiKey" short:"k" long:"api-key" description:"appkit api key"`
	OrganizationID string `yaml:"organizationId,omitempty" json:"organizationId,omitempty" short:"o" long:"organization" description:"organization id"`
	Environment    string `yaml:"environment,omitempty" json:"environment,omitempty" short:"e" long:"environment" description:"api environment" choice:"production" choice:"sandbox"`
	BaseURL        string `yaml:"baseURL,omitempty" json:"baseURL,omitempty" short:"u" long:"url" description:"api base url, overrides the environment default"`
	TokenURL       string `yaml:"tokenURL,omitempty" json:"tokenURL,omitempty" long:"token-url" description:"afs url holding the persisted session token"`

	// Store, if set, replaces the default file-backed token store so tokens
	// can be shared across client instances (e.g., per-user cache in caller).
	Store store.Store `yaml:"-" json:"-"`

	// Logger, if set, replaces the global zerolog logger.
	Logger *zerolog.Logger `yaml:"-" json:"-"`
}

// Init applies defaults: production environment, the environment's base URL,
// and a token snapshot under $HOME/.appkit.
func (o *Options) Init() {
	if o.Environment == "" {
		o.Environment = EnvironmentProduction
	}
	if o.BaseURL == "" {
		switch o.Environment {
		case EnvironmentSandbox:
			o.BaseURL = sandboxBaseURL
		default:
			o.BaseURL = productionBaseURL
		}
	}
	if o.TokenURL == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		o.TokenURL = "file://" + filepath.Join(home, ".appkit", "token.json")
	}
}

// Validate checks the merged options.
func (o *Options) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.APIKey, validation.Required),
		validation.Field(&o.Environment, validation.In(EnvironmentProduction, EnvironmentSandbox)),
		validation.Field(&o.BaseURL, validation.Required),
	)
}

// NewClient creates an AppKit auth service wired with token persistence and
// the credential-injecting transport, then restores any persisted session
// best-effort: a dead token or an unreachable API leaves the client signed
// out without failing construction.
func NewClient(options *Options) (*auth.Service, error) {
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	logger := zlog.Logger
	if options.Logger != nil {
		logger = *options.Logger
	}
	tokens := options.Store
	if tokens == nil {
		tokens = store.NewFileStore(options.TokenURL)
	}
	rt, err := transport.New(options.APIKey,
		transport.WithStore(tokens),
		transport.WithOrganizationID(options.OrganizationID))
	if err != nil {
		return nil, err
	}
	service := auth.New(options.BaseURL, &http.Client{Transport: rt}, tokens, auth.WithLogger(logger))
	if err = service.Restore(context.Background()); err != nil {
		logger.Debug().Err(err).Msg("session restore failed")
	}
	return service, nil
}
