package suggest

import (
	"encoding/json"
	"strings"
)

// Suggestion is a title/author candidate returned by the search API
type Suggestion struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
	ISBN          string `json:"isbn,omitempty"`
	Thumbnail     string `json:"thumbnail,omitempty"`
	Description   string `json:"description,omitempty"`
}

// Identifier types used by the volumes API
const (
	IdentifierISBN13 = "ISBN_13"
	IdentifierISBN10 = "ISBN_10"
)

// untitled is used when a volume carries no title
const untitled = "Untitled"

// volumesResponse matches the body of GET /books/v1/volumes
type volumesResponse struct {
	Kind       string   `json:"kind"`
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               *string              `json:"title"`
	Authors             authorList           `json:"authors"`
	PublishedDate       string               `json:"publishedDate"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
	ImageLinks          *imageLinks          `json:"imageLinks"`
	Description         string               `json:"description"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

// authorList accepts either an array of names or a single string
type authorList []string

func (a *authorList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*a = names
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single != "" {
		*a = authorList{single}
	}
	return nil
}

// toSuggestion maps a raw volume onto a Suggestion
func (v volume) toSuggestion() Suggestion {
	info := v.VolumeInfo

	s := Suggestion{
		ID:            v.ID,
		Title:         untitled,
		Author:        strings.Join(info.Authors, ", "),
		PublishedDate: info.PublishedDate,
		ISBN:          info.isbn(),
		Description:   info.Description,
	}
	if info.Title != nil {
		s.Title = *info.Title
	}
	if info.ImageLinks != nil {
		s.Thumbnail = info.ImageLinks.Thumbnail
	}

	return s
}

// isbn prefers ISBN-13 and falls back to ISBN-10
func (vi volumeInfo) isbn() string {
	for _, wanted := range []string{IdentifierISBN13, IdentifierISBN10} {
		for _, id := range vi.IndustryIdentifiers {
			if id.Type == wanted {
				return id.Identifier
			}
		}
	}
	return ""
}
