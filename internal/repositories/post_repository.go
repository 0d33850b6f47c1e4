package repositories

import (
	"errors"
	"strings"

	"creatorhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

const (
	SortNewest = "newest"
	SortOldest = "oldest"

	defaultPageSize = 50
	maxPageSize     = 200
)

// PostFilter narrows a post listing. Empty Status means every status.
type PostFilter struct {
	CreatorID string
	Status    models.PostStatus
	Search    string
	Sort      string
	Page      int
	PageSize  int
}

// Window returns the page and page size a listing actually uses.
func (f PostFilter) Window() (page, size int) {
	size = f.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	page = f.Page
	if page < 1 {
		page = 1
	}
	return page, size
}

func (f PostFilter) limitOffset() (int, int) {
	page, size := f.Window()
	return size, (page - 1) * size
}

type PostRepository interface {
	Create(db *gorm.DB, post *models.Post) error
	FindByID(db *gorm.DB, id string) (*models.Post, error)
	// FindByFilter returns one page and the total match count
	FindByFilter(db *gorm.DB, filter PostFilter) ([]models.Post, int64, error)
	// FindPublishedWithCreator returns published posts joined with their creator
	// profile. Posts without a profile row are left out.
	FindPublishedWithCreator(db *gorm.DB, filter PostFilter) ([]models.Post, int64, error)
	Update(db *gorm.DB, id string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
	DeleteByCreator(db *gorm.DB, creatorID string) (int64, error)
}

type postRepository struct{}

func NewPostRepository() PostRepository {
	return &postRepository{}
}

func (r *postRepository) Create(db *gorm.DB, post *models.Post) error {
	return db.Create(post).Error
}

func (r *postRepository) FindByID(db *gorm.DB, id string) (*models.Post, error) {
	var post models.Post
	if err := db.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByFilter(db *gorm.DB, filter PostFilter) ([]models.Post, int64, error) {
	query := applyPostFilter(db.Model(&models.Post{}), filter).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := filter.limitOffset()
	var posts []models.Post
	err := query.Order(postOrder(filter.Sort)).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) FindPublishedWithCreator(db *gorm.DB, filter PostFilter) ([]models.Post, int64, error) {
	filter.Status = models.PostStatusPublished
	query := applyPostFilter(db.Model(&models.Post{}).InnerJoins("Creator"), filter).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := filter.limitOffset()
	var posts []models.Post
	err := query.Order(postOrder(filter.Sort)).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, total, err
}

func applyPostFilter(query *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.CreatorID != "" {
		query = query.Where("posts.creator_id = ?", filter.CreatorID)
	}
	if filter.Status != "" {
		query = query.Where("posts.status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsPattern(search)
		query = query.Where("LOWER(posts.caption) LIKE ? ESCAPE '!' OR LOWER(posts.title) LIKE ? ESCAPE '!'", pattern, pattern)
	}
	return query
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern matches search literally anywhere in a lowercased column.
// '!' is the escape character; it needs no quoting in postgres or mysql.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

func postOrder(sort string) string {
	if sort == SortOldest {
		return "posts.created_at ASC"
	}
	return "posts.created_at DESC"
}

func (r *postRepository) Update(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *postRepository) DeleteByCreator(db *gorm.DB, creatorID string) (int64, error) {
	result := db.Where("creator_id = ?", creatorID).Delete(&models.Post{})
	return result.RowsAffected, result.Error
}
