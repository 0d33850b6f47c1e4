package web

import (
	"bytes"
	"testing"
	"time"

	"creatorhub_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", Initials("ada", "Lovelace"))
	assert.Equal(t, "A", Initials("Ada", " "))
	assert.Equal(t, "?", Initials("", ""))
}

func TestLandingRendersFAQ(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, LandingTemplate, NewLandingPage(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))))

	out := buf.String()
	assert.Len(t, DefaultFAQ(), 5)
	for _, item := range DefaultFAQ() {
		assert.Contains(t, out, item.Question)
	}
	assert.Contains(t, out, "I'm a creator")
	assert.Contains(t, out, "2025 CreatorHub")
}

func TestExploreRendersPosts(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	resp := &dto.ExploreResponse{
		Posts: []dto.ExplorePostDTO{
			{ID: "p1", MediaURL: "http://cdn/posts/user-1/1.mp4", MediaType: "video", Caption: "<b>run</b>", Creator: dto.ExploreCreatorDTO{FirstName: "Ada", LastName: "L"}},
			{ID: "p2", MediaURL: "http://cdn/posts/user-1/2.png", MediaType: "image", Caption: "swim", Creator: dto.ExploreCreatorDTO{FirstName: "Ada", AvatarURL: "http://cdn/a.png"}},
		},
		Total: 2,
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, ExploreTemplate, NewExplorePage("run", resp, time.Now())))

	out := buf.String()
	assert.Contains(t, out, `<video src="http://cdn/posts/user-1/1.mp4"`)
	assert.Contains(t, out, `<img src="http://cdn/posts/user-1/2.png"`)
	assert.Contains(t, out, "&lt;b&gt;run&lt;/b&gt;")
	assert.Contains(t, out, `value="run"`)
	assert.Contains(t, out, ">AL<")
	assert.NotContains(t, out, "No posts found.")
}

func TestExploreEmpty(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, ExploreTemplate, NewExplorePage("", nil, time.Now())))
	assert.Contains(t, buf.String(), "No posts found.")
}
