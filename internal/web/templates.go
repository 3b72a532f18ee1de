package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"

	"github.com/edvart/league-stats/internal/assets"
	"github.com/edvart/league-stats/internal/riotapi"
)

// LoadTemplates parses every .html file in templatesFS into one set.
func LoadTemplates(templatesFS fs.FS, cdn assets.CDN) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs(cdn))

	err := fs.WalkDir(templatesFS, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(name) != ".html" {
			return nil
		}

		content, err := fs.ReadFile(templatesFS, name)
		if err != nil {
			return err
		}
		if _, err := tmpl.Parse(string(content)); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// LoadTemplatesFromDir loads templates from a directory on disk, so edits
// show up on restart without a rebuild.
func LoadTemplatesFromDir(dir string, cdn assets.CDN) (*template.Template, error) {
	return LoadTemplates(os.DirFS(dir), cdn)
}

// playerPanel is one row of a team panel.
type playerPanel struct {
	riotapi.Participant
	Winner bool
}

// templateFuncs returns the common template functions.
func templateFuncs(cdn assets.CDN) template.FuncMap {
	return template.FuncMap{
		"championIcon": cdn.ChampionIconURL,
		"panel": func(p riotapi.Participant, winner bool) playerPanel {
			return playerPanel{Participant: p, Winner: winner}
		},
		"playerName": func(p riotapi.Participant) string {
			if name := p.DisplayName(); name != "" {
				return name
			}
			return "Unknown Player"
		},
		"outcome": func(won bool) string {
			if won {
				return "Winning"
			}
			return "Losing"
		},
		"resultClass": func(won bool) string {
			if won {
				return "winner"
			}
			return "loser"
		},
	}
}
