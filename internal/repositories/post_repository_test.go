package repositories

import (
	"testing"

	"creatorhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		search string
		want   string
	}{
		{"Cat", "%cat%"},
		{"100%", "%100!%%"},
		{"snake_case", "%snake!_case%"},
		{"wow!", "%wow!!%"},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			assert.Equal(t, tt.want, containsPattern(tt.search))
		})
	}
}

func TestPostFilter_Window(t *testing.T) {
	page, size := PostFilter{}.Window()
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, size)

	page, size = PostFilter{Page: 3, PageSize: 1000}.Window()
	assert.Equal(t, 3, page)
	assert.Equal(t, maxPageSize, size)

	limit, offset := PostFilter{Page: 3, PageSize: 10}.limitOffset()
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)
}

func TestApplyPostFilter_EscapesSearch(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=creatorhub dbname=creatorhub sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var posts []models.Post
		return applyPostFilter(tx.Model(&models.Post{}), PostFilter{Search: " 100% "}).Find(&posts)
	})
	assert.Contains(t, sql, `LOWER(posts.caption) LIKE '%100!%%' ESCAPE '!'`)
	assert.Contains(t, sql, `LOWER(posts.title) LIKE '%100!%%' ESCAPE '!'`)
}
