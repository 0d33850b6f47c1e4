package dto

import (
	"testing"
	"time"

	"creatorhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestMediaTypeOf(t *testing.T) {
	assert.Equal(t, "video", MediaTypeOf("/files/posts/user-1/1.MP4"))
	assert.Equal(t, "video", MediaTypeOf("https://cdn/x.webm?token=1"))
	assert.Equal(t, "image", MediaTypeOf("https://cdn/x.jpg"))
	assert.Equal(t, "image", MediaTypeOf(""))
}

func TestNewProfileDTO_FormatsDate(t *testing.T) {
	dob := datatypes.Date(time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC))
	out := NewProfileDTO(&models.Profile{ID: "u1", FirstName: "Ada", DateOfBirth: &dob})
	assert.Equal(t, "1990-05-17", out.DateOfBirth)

	out = NewProfileDTO(&models.Profile{ID: "u1"})
	assert.Empty(t, out.DateOfBirth)
}

func TestNewExplorePostDTO(t *testing.T) {
	p := &models.Post{MediaURL: "a.mov", Creator: &models.Profile{ID: "c1", FirstName: "Ada", AvatarURL: "av"}}
	p.ID = "p1"
	out := NewExplorePostDTO(p)
	assert.Equal(t, "video", out.MediaType)
	assert.Equal(t, "Ada", out.Creator.FirstName)
	assert.Equal(t, "c1", out.Creator.ID)
}

func TestNewBrandDTO_Nil(t *testing.T) {
	assert.Nil(t, NewBrandDTO(nil))
	assert.Equal(t, "Acme", NewBrandDTO(&models.Brand{CompanyName: "Acme"}).CompanyName)
}
