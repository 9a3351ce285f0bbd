package authz

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/casbin/casbin/v3"
)

//go:embed model.conf policy.csv
var embedFS embed.FS

// Authorizer decides which roles may call which routes. The role hierarchy
// and route grants live in the embedded policy.csv.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// New builds the enforcer from the embedded model and policy.
func New() (*Authorizer, error) {
	dir, err := os.MkdirTemp("", "taskapi-casbin-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := writeEmbedToDir(dir, "model.conf", "policy.csv"); err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(filepath.Join(dir, "model.conf"), filepath.Join(dir, "policy.csv"))
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}
	return &Authorizer{enforcer: e}, nil
}

func writeEmbedToDir(dir string, names ...string) error {
	for _, name := range names {
		data, err := embedFS.ReadFile(name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0600); err != nil {
			return err
		}
	}
	return nil
}

// Allowed reports whether any of roles grants method on path.
func (a *Authorizer) Allowed(roles []string, path, method string) (bool, error) {
	for _, role := range roles {
		ok, err := a.enforcer.Enforce(role, path, method)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
