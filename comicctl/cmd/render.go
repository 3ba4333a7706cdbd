package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"comicapp/catalog/adapters/viewdto"
	"comicapp/catalog/screens"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func render(w io.Writer, format string, v screens.View) error {
	dto := viewdto.FromView(v)
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dto)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dto); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderText(w, dto)
	}
}

func renderText(w io.Writer, v viewdto.View) error {
	switch {
	case v.Status == string(screens.StatusError):
		_, err := fmt.Fprintf(w, "error: %s\n", v.Message)
		return err
	case v.Status == string(screens.StatusLoading):
		_, err := fmt.Fprintln(w, "loading...")
		return err
	case v.Comic != nil:
		return renderComic(w, *v.Comic)
	default:
		return renderComics(w, v.Comics)
	}
}

func renderComics(w io.Writer, comics []viewdto.Comic) error {
	if len(comics) == 0 {
		_, err := fmt.Fprintln(w, "No comics.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPAGES\tCREATORS")
	for _, c := range comics {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.ID, c.Title, c.PageCount, joinCreators(c.Creators))
	}
	return tw.Flush()
}

func renderComic(w io.Writer, c viewdto.Comic) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", c.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", c.Title)
	fmt.Fprintf(tw, "Pages:\t%d\n", c.PageCount)
	fmt.Fprintf(tw, "Creators:\t%s\n", joinCreators(c.Creators))
	fmt.Fprintf(tw, "Image:\t%s\n", c.ImageURL)
	fmt.Fprintf(tw, "Description:\t%s\n", c.Description)
	return tw.Flush()
}

func joinCreators(creators []string) string {
	if len(creators) == 0 {
		return "-"
	}
	return strings.Join(creators, ", ")
}
