package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/gallery"
	"github.com/mmcdole/folio/internal/imageinfo"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// tile is one rendered gallery cell
type tile struct {
	Index   int
	URL     string
	Class   string
	Caption string
	Delay   string
}

type pageData struct {
	Tiles []tile
}

// handlePage renders the masonry page. Tiles are classified from the image
// headers; tiles whose image does not decode are left out.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	state := gallery.NewState(s.Images())

	for i, id := range state.IDs() {
		cfg, err := s.decodeConfig(id)
		if err != nil {
			s.logger.Debug("tile image unreadable", "name", id, "error", err)
			if err := state.Hide(i); err != nil {
				s.logger.Warn("failed to hide tile", "name", id, "error", err)
			}
			continue
		}
		if _, err := state.SetDimensions(i, cfg.Width, cfg.Height); err != nil {
			s.logger.Warn("failed to classify tile", "name", id, "error", err)
		}
	}

	data := pageData{}
	for i, e := range state.Entries() {
		if e.Hidden {
			continue
		}
		data.Tiles = append(data.Tiles, tile{
			Index:   i,
			URL:     "images/" + url.PathEscape(e.ID),
			Class:   e.Layout.String(),
			Caption: domain.Caption(i),
			Delay:   fmt.Sprintf("%.1fs", 0.1*float64(len(data.Tiles))),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

func (s *Server) decodeConfig(name string) (imageinfo.Config, error) {
	f, err := os.Open(filepath.Join(s.cfg.ImagesDir, filepath.Base(name)))
	if err != nil {
		return imageinfo.Config{}, err
	}
	defer f.Close()
	return imageinfo.DecodeConfig(f)
}
