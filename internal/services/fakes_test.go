package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"creatorhub_backend/internal/email"
	"creatorhub_backend/internal/events"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func passthroughTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return fn(db)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]models.User{}}
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) find(match func(models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) FindByVerificationToken(db *gorm.DB, token string) (*models.User, error) {
	return r.find(func(u models.User) bool { return token != "" && u.VerificationToken == token })
}

func (r *fakeUserRepo) Verify(db *gorm.DB, userID string) error {
	return r.update(userID, func(u *models.User) {
		u.IsVerified = true
		u.Status = models.UserStatusActive
		u.VerificationToken = ""
	})
}

func (r *fakeUserRepo) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	return r.update(userID, func(u *models.User) { u.Status = status })
}

func (r *fakeUserRepo) update(id string, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	fn(&u)
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) Delete(db *gorm.DB, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]models.RefreshToken{}}
}

func (r *fakeTokenRepo) Create(db *gorm.DB, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	r.tokens[token.Token] = *token
	return nil
}

func (r *fakeTokenRepo) FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenString]
	if !ok {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	return &t, nil
}

func (r *fakeTokenRepo) DeleteByToken(db *gorm.DB, tokenString string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[tokenString]; !ok {
		return repositories.ErrRefreshTokenNotFound
	}
	delete(r.tokens, tokenString)
	return nil
}

func (r *fakeTokenRepo) DeleteByUserID(db *gorm.DB, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, t := range r.tokens {
		if t.ExpiresAt.Before(now) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]models.Profile
	brands   map[string]models.Brand
	findErr  error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]models.Profile{}, brands: map[string]models.Brand{}}
}

func (r *fakeProfileRepo) Create(db *gorm.DB, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *fakeProfileRepo) FindByID(db *gorm.DB, id string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	return &p, nil
}

func (r *fakeProfileRepo) FindByIDs(db *gorm.DB, ids []string) (map[string]*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]*models.Profile{}
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			p := p
			out[id] = &p
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) Upsert(db *gorm.DB, profile *models.Profile) error {
	return r.Create(db, profile)
}

func (r *fakeProfileRepo) UpsertRole(db *gorm.DB, id string, role models.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.profiles[id]
	p.ID, p.Role = id, role
	r.profiles[id] = p
	return nil
}

func (r *fakeProfileRepo) Update(db *gorm.DB, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "first_name":
			p.FirstName = s
		case "last_name":
			p.LastName = s
		case "full_name":
			p.FullName = s
		case "bio":
			p.Bio = s
		case "city":
			p.City = s
		case "avatar_url":
			p.AvatarURL = s
		}
	}
	r.profiles[id] = p
	return nil
}

func (r *fakeProfileRepo) Delete(db *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

func (r *fakeProfileRepo) CreateBrand(db *gorm.DB, brand *models.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.brands[brand.ID] = *brand
	return nil
}

func (r *fakeProfileRepo) FindBrandByID(db *gorm.DB, id string) (*models.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.brands[id]
	if !ok {
		return nil, repositories.ErrBrandNotFound
	}
	return &b, nil
}

func (r *fakeProfileRepo) UpsertBrand(db *gorm.DB, brand *models.Brand) error {
	return r.CreateBrand(db, brand)
}

func (r *fakeProfileRepo) DeleteBrand(db *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.brands, id)
	return nil
}

type fakePostRepo struct {
	mu       sync.Mutex
	posts    map[string]models.Post
	profiles *fakeProfileRepo
	clock    time.Time
}

func newFakePostRepo(profiles *fakeProfileRepo) *fakePostRepo {
	return &fakePostRepo{
		posts:    map[string]models.Post{},
		profiles: profiles,
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakePostRepo) Create(db *gorm.DB, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	// strictly increasing timestamps keep the sort deterministic
	r.clock = r.clock.Add(time.Minute)
	post.CreatedAt, post.UpdatedAt = r.clock, r.clock
	r.posts[post.ID] = *post
	return nil
}

func (r *fakePostRepo) FindByID(db *gorm.DB, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return &p, nil
}

func (r *fakePostRepo) FindByFilter(db *gorm.DB, filter repositories.PostFilter) ([]models.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(filter, func(models.Post) bool { return true })
}

func (r *fakePostRepo) FindPublishedWithCreator(db *gorm.DB, filter repositories.PostFilter) ([]models.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	filter.Status = models.PostStatusPublished
	posts, _, err := r.filter(filter, func(p models.Post) bool {
		_, ok := r.profiles.profiles[p.CreatorID]
		return ok
	})
	for i := range posts {
		creator := r.profiles.profiles[posts[i].CreatorID]
		posts[i].Creator = &creator
	}
	return posts, int64(len(posts)), err
}

func (r *fakePostRepo) filter(f repositories.PostFilter, keep func(models.Post) bool) ([]models.Post, int64, error) {
	search := strings.ToLower(f.Search)
	var out []models.Post
	for _, p := range r.posts {
		if f.CreatorID != "" && p.CreatorID != f.CreatorID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Caption), search) && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Sort == repositories.SortOldest {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	total := int64(len(out))
	if f.PageSize > 0 && len(out) > f.PageSize {
		out = out[:f.PageSize]
	}
	return out, total, nil
}

func (r *fakePostRepo) Update(db *gorm.DB, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			p.Title = v.(string)
		case "caption":
			p.Caption = v.(string)
		case "category":
			p.Category = v.(string)
		case "status":
			p.Status = v.(models.PostStatus)
		case "updated_at":
			p.UpdatedAt = v.(time.Time)
		}
	}
	r.posts[id] = p
	return nil
}

func (r *fakePostRepo) Delete(db *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) DeleteByCreator(db *gorm.DB, creatorID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, p := range r.posts {
		if p.CreatorID == creatorID {
			delete(r.posts, id)
			n++
		}
	}
	return n, nil
}

type fakeMailer struct {
	mu     sync.Mutex
	tokens []string
	err    error
}

func (m *fakeMailer) Send(ctx context.Context, e *email.Email) error {
	return m.err
}

func (m *fakeMailer) SendVerification(ctx context.Context, to, name, role, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = append(m.tokens, token)
	return m.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.PostEvent
	err    error
}

func (p *fakePublisher) PublishPost(ctx context.Context, event events.PostEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []events.PostEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.PostEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

const testBaseURL = "http://cdn.test/files"

func newTestStorage(t *testing.T) *storage.LocalStorage {
	t.Helper()
	s, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: testBaseURL})
	require.NoError(t, err)
	return s
}

// fileHeader builds a real multipart.FileHeader for field "file".
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	t.Cleanup(func() { _ = req.MultipartForm.RemoveAll() })

	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

var errBoom = errors.New("boom")
