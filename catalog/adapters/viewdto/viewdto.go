// Package viewdto is the serialized form of screen views shared by the HTTP,
// WebSocket and NATS adapters and by comicctl output.
package viewdto

import (
	"comicapp/catalog/core"
	"comicapp/catalog/screens"
)

type Comic struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	ImageURL    string   `json:"imageUrl" yaml:"imageUrl"`
	PageCount   int      `json:"pageCount" yaml:"pageCount"`
	Creators    []string `json:"creators" yaml:"creators"`
}

type View struct {
	Route   string  `json:"route" yaml:"route"`
	Status  string  `json:"status" yaml:"status"`
	Comics  []Comic `json:"comics,omitzero" yaml:"comics,omitempty"`
	Comic   *Comic  `json:"comic,omitempty" yaml:"comic,omitempty"`
	Message string  `json:"message,omitempty" yaml:"message,omitempty"`
}

func FromComic(c core.Comic) Comic {
	creators := c.Creators
	if creators == nil {
		creators = []string{}
	}
	return Comic{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		PageCount:   c.PageCount,
		Creators:    creators,
	}
}

func FromView(v screens.View) View {
	out := View{
		Route:   v.Route,
		Status:  string(v.Status),
		Message: v.Message,
	}
	if v.Status == screens.StatusSuccess && v.Comic == nil {
		out.Comics = make([]Comic, 0, len(v.Comics))
		for _, c := range v.Comics {
			out.Comics = append(out.Comics, FromComic(c))
		}
	}
	if v.Comic != nil {
		c := FromComic(*v.Comic)
		out.Comic = &c
	}
	return out
}
