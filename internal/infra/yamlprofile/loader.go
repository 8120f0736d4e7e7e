// Package yamlprofile loads runtime profiles (variable sets) from workspace YAML.
package yamlprofile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

type Loader struct {
	rootDir     string
	profilesDir string
	secretsFile string
}

type Option func(*Loader)

func WithProfilesDir(dir string) Option {
	return func(l *Loader) { l.profilesDir = dir }
}

func WithSecretsFile(name string) Option {
	return func(l *Loader) { l.secretsFile = name }
}

func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{
		rootDir:     root,
		profilesDir: "profiles",
		secretsFile: "secrets.local.yaml",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var (
	_ ports.ProfileLoader  = (*Loader)(nil)
	_ ports.ProfileCatalog = (*Loader)(nil)
)

// LoadProfile accepts either a profile name (e.g., "local") or a full path to a YAML file.
// An optional secrets file next to the profile overrides its base vars.
func (l *Loader) LoadProfile(nameOrPath string) (domain.Profile, error) {
	var profPath string
	var profName string

	if strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") || strings.Contains(nameOrPath, string(filepath.Separator)) {
		profPath = filepath.Clean(nameOrPath)
		profName = strings.TrimSuffix(filepath.Base(profPath), filepath.Ext(profPath))
	} else {
		profName = nameOrPath
		profPath = filepath.Join(l.rootDir, l.profilesDir, profName+".yaml")
	}

	base, err := readVars(profPath)
	if err != nil {
		return domain.Profile{}, err
	}

	secretsPath := filepath.Join(filepath.Dir(profPath), l.secretsFile)
	secrets, secErr := readVarsOptional(secretsPath)
	if secErr != nil {
		return domain.Profile{}, secErr
	}

	return domain.Profile{
		Name: profName,
		Vars: domain.Merge(base, secrets),
	}, nil
}

func (l *Loader) ListProfiles(root string) ([]domain.ProfileRef, error) {
	dir := filepath.Join(root, l.profilesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlprofile.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.ProfileRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		low := strings.ToLower(name)
		if !strings.HasSuffix(low, ".yaml") && !strings.HasSuffix(low, ".yml") {
			continue
		}
		if low == l.secretsFile {
			continue
		}

		refs = append(refs, domain.ProfileRef{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

type yamlProfile struct {
	Vars map[string]string `yaml:"vars"`
}

func readVars(path string) (domain.Vars, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlprofile.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlProfile
	if err := yaml.Unmarshal(b, &y); err != nil {
		return nil, &domain.OpError{
			Op:   "yamlprofile.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if y.Vars == nil {
		y.Vars = map[string]string{}
	}

	return domain.Vars(y.Vars), nil
}

func readVarsOptional(path string) (domain.Vars, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Vars{}, nil
		}
		return nil, &domain.OpError{
			Op:   "yamlprofile.secrets",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	v, err := readVars(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	return v, nil
}
