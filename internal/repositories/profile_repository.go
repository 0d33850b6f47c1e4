package repositories

import (
	"errors"

	"creatorhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrBrandNotFound   = errors.New("brand not found")
)

// creatorFormColumns are the columns the creator profile form writes.
var creatorFormColumns = []string{
	"role", "first_name", "last_name", "full_name", "bio", "date_of_birth",
	"email", "phone", "country", "city", "instagram_url", "linkedin_url",
	"portfolio_url", "avatar_url", "updated_at",
}

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByID(db *gorm.DB, id string) (*models.Profile, error)
	FindByIDs(db *gorm.DB, ids []string) (map[string]*models.Profile, error)
	// Upsert inserts the profile or overwrites every form column of the existing row
	Upsert(db *gorm.DB, profile *models.Profile) error
	// UpsertRole makes sure a profile row exists and carries the role
	UpsertRole(db *gorm.DB, id string, role models.UserRole) error
	Update(db *gorm.DB, id string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error

	CreateBrand(db *gorm.DB, brand *models.Brand) error
	FindBrandByID(db *gorm.DB, id string) (*models.Brand, error)
	UpsertBrand(db *gorm.DB, brand *models.Brand) error
	DeleteBrand(db *gorm.DB, id string) error
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Create(db *gorm.DB, profile *models.Profile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindByID(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByIDs(db *gorm.DB, ids []string) (map[string]*models.Profile, error) {
	result := make(map[string]*models.Profile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var profiles []models.Profile
	if err := db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		result[profiles[i].ID] = &profiles[i]
	}
	return result, nil
}

func (r *profileRepository) Upsert(db *gorm.DB, profile *models.Profile) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(creatorFormColumns),
	}).Create(profile).Error
}

func (r *profileRepository) UpsertRole(db *gorm.DB, id string, role models.UserRole) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&models.Profile{ID: id, Role: role}).Error
}

func (r *profileRepository) Update(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Profile{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) Delete(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&models.Profile{}).Error
}

func (r *profileRepository) CreateBrand(db *gorm.DB, brand *models.Brand) error {
	return db.Create(brand).Error
}

func (r *profileRepository) FindBrandByID(db *gorm.DB, id string) (*models.Brand, error) {
	var brand models.Brand
	if err := db.Where("id = ?", id).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	return &brand, nil
}

func (r *profileRepository) UpsertBrand(db *gorm.DB, brand *models.Brand) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"company_name", "website", "updated_at"}),
	}).Create(brand).Error
}

func (r *profileRepository) DeleteBrand(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&models.Brand{}).Error
}
