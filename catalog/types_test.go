package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookWriteValidate(t *testing.T) {
	tests := []struct {
		name    string
		write   BookWrite
		wantErr bool
	}{
		{name: "complete", write: BookWrite{Title: "Emma", AuthorID: 1, GenreID: 2}},
		{name: "missing author", write: BookWrite{Title: "Emma", GenreID: 2}, wantErr: true},
		{name: "missing genre", write: BookWrite{Title: "Emma", AuthorID: 1}, wantErr: true},
		{name: "blank title", write: BookWrite{Title: "   ", AuthorID: 1, GenreID: 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.write.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncompleteBook)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthorOmitsUnsetID(t *testing.T) {
	raw, err := json.Marshal(Author{Name: "Jane Austen"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Jane Austen"}`, string(raw))
}

func TestBookWriteShape(t *testing.T) {
	raw, err := json.Marshal(BookWrite{Title: " Emma ", AuthorID: 1, GenreID: 2}.Normalized())
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Emma","authorId":1,"genreId":2}`, string(raw))
}
