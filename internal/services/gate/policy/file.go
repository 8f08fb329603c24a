package policy

import (
	"context"
	"os"
	"sync"

	perr "refgate/internal/platform/errors"
	"refgate/internal/platform/validate"

	"gopkg.in/yaml.v3"
)

// fileDoc is the schema of a policy file:
//
//	branches:
//	  release:
//	    enforce_merge_only: "true"
//	    enforce_auth_only: "true"
//	    trust_store_path: /etc/refgate/keys
//
// Booleans are the same closed string enumeration the kv store uses, but a
// provisioned file is validated strictly up front: a typo there is an
// operator mistake worth failing loud on, not a value to silently default
type fileDoc struct {
	Branches map[string]fileEntry `yaml:"branches" validate:"dive"`
}

type fileEntry struct {
	EnforceMergeOnly string `yaml:"enforce_merge_only" validate:"omitempty,oneof=true false"`
	EnforceAuthOnly  string `yaml:"enforce_auth_only" validate:"omitempty,oneof=true false"`
	TrustStorePath   string `yaml:"trust_store_path"`
}

// FileSource reads policy from a YAML file, loaded once per process
type FileSource struct {
	path string

	once    sync.Once
	entries map[string]fileEntry
	loadErr error
}

// NewFileSource builds a Source over the YAML policy file at path
func NewFileSource(path string) *FileSource { return &FileSource{path: path} }

func (f *FileSource) load() {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		f.loadErr = perr.Wrapf(err, perr.ErrorCodeConfigStore, "read policy file %s", f.path)
		return
	}
	var doc fileDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		f.loadErr = perr.Wrapf(err, perr.ErrorCodeConfigStore, "parse policy file %s", f.path)
		return
	}
	for branch, e := range doc.Branches {
		if err := validate.Struct(e); err != nil {
			f.loadErr = perr.Wrapf(err, perr.ErrorCodeConfigStore, "policy file %s, branch %s", f.path, branch)
			return
		}
	}
	f.entries = doc.Branches
}

// Get implements Source. The file is decoded and validated on first use;
// a broken file is a configuration-store failure for every lookup
func (f *FileSource) Get(_ context.Context, branch, key string) (string, bool, error) {
	f.once.Do(f.load)
	if f.loadErr != nil {
		return "", false, f.loadErr
	}
	e, ok := f.entries[branch]
	if !ok {
		return "", false, nil
	}
	switch key {
	case KeyMergeOnly:
		return present(e.EnforceMergeOnly)
	case KeyAuthOnly:
		return present(e.EnforceAuthOnly)
	case KeyTrustStore:
		return present(e.TrustStorePath)
	default:
		return "", false, nil
	}
}

func present(v string) (string, bool, error) {
	if v == "" {
		return "", false, nil
	}
	return v, true, nil
}
