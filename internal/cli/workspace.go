package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	agentpkg "github.com/erinmikailstaples/Agent-Adventures/internal/agent"
	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/httpclient"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/mdguide"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/ollama"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/openweather"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/reportstore"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/workspacefinder"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/yamlagent"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/yamlprofile"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	guide ports.GuideLoader

	agents       ports.AgentLoader
	agentCatalog ports.AgentLoader

	profiles       ports.ProfileLoader
	profileCatalog ports.ProfileCatalog

	store ports.ReportStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	agentLoader := yamlagent.NewLoader(
		yamlagent.WithAgentsDir(cfg.Paths.AgentsDir),
	)

	profileLoader := yamlprofile.NewLoader(
		root,
		yamlprofile.WithProfilesDir(cfg.Paths.ProfilesDir),
	)

	return &workspaceCtx{
		root:           root,
		cfg:            cfg,
		guide:          mdguide.NewLoader(filepath.Join(root, cfg.Paths.GuideDir)),
		agents:         agentLoader,
		agentCatalog:   agentLoader,
		profiles:       profileLoader,
		profileCatalog: profileLoader,
		store:          reportstore.NewJSONStore(root, cfg, reportstore.WithIndex(true)),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `adventures init`): %w", wd, err)
	}
	return root, nil
}

// guideRoot returns the absolute guide directory of the workspace.
func (ws *workspaceCtx) guideRoot() string {
	return filepath.Join(ws.root, ws.cfg.Paths.GuideDir)
}

// resolveAgentPath turns an agent name, file name, or path into the spec
// file path.
func resolveAgentPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("agent is required (use --agent or -a)")
	}

	// If arg looks like a path (contains separators), resolve relative to workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	agentsDir := filepath.Join(ws.root, ws.cfg.Paths.AgentsDir)

	if hasYAMLExt(in) {
		p := filepath.Join(agentsDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	p1 := filepath.Join(agentsDir, in+".yaml")
	if fileExists(p1) {
		return p1, nil
	}
	p2 := filepath.Join(agentsDir, in+".yml")
	if fileExists(p2) {
		return p2, nil
	}

	// As a last resort: match by the spec's "name" field.
	if ws.agentCatalog == nil {
		return "", fmt.Errorf("agent %q not found in %q", in, agentsDir)
	}
	refs, err := ws.agentCatalog.ListAgents(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", fmt.Errorf("agent %q not found in %q", in, agentsDir)
}

// resolveProfileArg returns the profile name or path to load, defaulting
// to the workspace's configured profile.
func resolveProfileArg(ws *workspaceCtx, arg string) string {
	in := strings.TrimSpace(arg)
	if in == "" {
		return ws.cfg.Defaults.Profile
	}
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p)
	}
	return in
}

// buildEngineDeps constructs the run collaborators from a loaded profile:
// an Ollama generator for the profile's base URL and either a live
// OpenWeatherMap provider or the static fallback when no API key is set.
func buildEngineDeps(profile domain.Profile) agentpkg.Deps {
	baseURL, _ := domain.Get(profile.Vars, "ollama_base_url")
	generator := ollama.New(baseURL, httpclient.New(httpclient.SlowConfig()))

	var weather ports.WeatherProvider
	if key, ok := domain.Get(profile.Vars, "weather_api_key"); ok && key != "" {
		weather = openweather.New(key, httpclient.New(httpclient.DefaultConfig()))
	} else {
		weather = openweather.NewStatic()
	}

	return agentpkg.Deps{
		Generator: generator,
		Weather:   weather,
	}
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
