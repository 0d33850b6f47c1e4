package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/imageprocessor"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/storage"

	"github.com/stretchr/testify/require"
)

type harness struct {
	users     *fakeUserRepo
	tokens    *fakeTokenRepo
	profiles  *fakeProfileRepo
	posts     *fakePostRepo
	mailer    *fakeMailer
	publisher *fakePublisher
	store     *storage.LocalStorage
	jwt       *auth.TokenManager

	media     MediaService
	auth      AuthService
	profile   ProfileService
	post      PostService
	dashboard DashboardService
	explore   ExploreService
	admin     AdminService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		users:     newFakeUserRepo(),
		tokens:    newFakeTokenRepo(),
		profiles:  newFakeProfileRepo(),
		mailer:    &fakeMailer{},
		publisher: &fakePublisher{},
		store:     newTestStorage(t),
		jwt:       auth.NewTokenManager("test-secret", 15*time.Minute),
	}
	h.posts = newFakePostRepo(h.profiles)

	h.media = NewMediaService(h.store, imageprocessor.NewProcessor(85, 64), MediaConfig{
		MaxSize:      1 << 20,
		AllowedTypes: []string{"image/png", "image/jpeg", "image/webp", "video/mp4"},
	})
	h.auth = NewAuthService(h.users, h.profiles, h.tokens, h.jwt, h.mailer, time.Hour, passthroughTx)
	h.profile = NewProfileService(h.profiles, h.posts, h.media, passthroughTx)
	h.post = NewPostService(h.posts, h.media, h.publisher)
	h.dashboard = NewDashboardService(h.users, h.profiles, h.post)
	h.explore = NewExploreService(h.posts)
	h.admin = NewAdminService(h.users, h.profiles, h.posts, h.tokens, h.media, passthroughTx)
	return h
}

// addUser stores a verified, active account with the given profile.
func (h *harness) addUser(t *testing.T, emailAddr string, role models.UserRole, first, last string) string {
	t.Helper()
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	u := &models.User{Email: emailAddr, PasswordHash: hash, Status: models.UserStatusActive, IsVerified: true}
	require.NoError(t, h.users.Create(nil, u))
	require.NoError(t, h.profiles.Create(nil, &models.Profile{
		ID:        u.ID,
		Role:      role,
		FirstName: first,
		LastName:  last,
		FullName:  models.ComposeFullName(first, last),
		Email:     emailAddr,
	}))
	return u.ID
}

func (h *harness) addPost(t *testing.T, creatorID, caption string, status models.PostStatus) *models.Post {
	t.Helper()
	p := &models.Post{
		CreatorID: creatorID,
		MediaURL:  testBaseURL + "/posts/user-" + creatorID + "/1.png",
		Caption:   caption,
		Status:    status,
	}
	require.NoError(t, h.posts.Create(nil, p))
	return p
}

func testPNG(t *testing.T, w, hgt int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, hgt))
	for x := 0; x < w; x++ {
		for y := 0; y < hgt; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
