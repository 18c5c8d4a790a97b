package main

import (
	"context"
	"flag"

	"github.com/dojoctl/dojoctl/pkg/config"
	"github.com/dojoctl/dojoctl/pkg/dojo"
	"github.com/dojoctl/dojoctl/pkg/scantypes"
	"github.com/dojoctl/dojoctl/pkg/ui"
)

// connectionFlags is the flag set shared by every subcommand that talks to
// a server. Each flag falls back to its DOJO_* environment variable, then
// to the optional YAML config file.
type connectionFlags struct {
	url        string
	token      string
	username   string
	password   string
	apiSpec    string
	configPath string
	source     string
}

func addConnectionFlags(fs *flag.FlagSet) *connectionFlags {
	cf := &connectionFlags{}
	fs.StringVar(&cf.url, "url", "", "Base URL, e.g. https://dojo.example (env DOJO_URL)")
	fs.StringVar(&cf.token, "token", "", "API token, preferred over credentials (env DOJO_TOKEN)")
	fs.StringVar(&cf.username, "username", "", "Username when no token is set (env DOJO_USERNAME)")
	fs.StringVar(&cf.password, "password", "", "Password when no token is set (env DOJO_PASSWORD)")
	fs.StringVar(&cf.apiSpec, "api-spec", "", "Path to a local OpenAPI JSON file (env DOJO_API_SPEC)")
	fs.StringVar(&cf.configPath, "config", "", "Path to a YAML config file (env DOJO_CONFIG)")
	fs.StringVar(&cf.source, "scan-types-source", "auto", "Where to load scan types: auto | server | file")
	return cf
}

// connect resolves settings and constructs the authenticated client.
// Settings validation happens before any network traffic; the token
// exchange inside dojo.New is the first possible remote call.
func connect(ctx context.Context, cf *connectionFlags) (*dojo.Client, config.Settings, error) {
	settings, err := config.Resolve(config.Settings{
		URL:      cf.url,
		Token:    cf.token,
		Username: cf.username,
		Password: cf.password,
		APISpec:  cf.apiSpec,
	}, cf.configPath)
	if err != nil {
		return nil, config.Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return nil, config.Settings{}, err
	}

	client, err := dojo.New(ctx, dojo.Config{
		BaseURL:  settings.URL,
		Token:    settings.Token,
		Username: settings.Username,
		Password: settings.Password,
	})
	if err != nil {
		return nil, config.Settings{}, err
	}
	return client, settings, nil
}

// newResolver wires the scan-type resolver for one run.
func newResolver(client *dojo.Client, settings config.Settings) *scantypes.Resolver {
	r := &scantypes.Resolver{
		SpecPath: settings.APISpec,
		Warn:     ui.PrintWarning,
	}
	if client != nil {
		r.Client = client
	}
	return r
}
