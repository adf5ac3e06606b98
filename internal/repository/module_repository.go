package repository

import (
	"github.com/Cleverson128/METODO-VAP/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

// FindAll returns the catalog in id order, which is also the unlock
// order.
func (r *ModuleRepository) FindAll() ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Order("id ASC").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) FindByID(id uint) (*model.CourseModule, error) {
	var module model.CourseModule
	err := r.DB.First(&module, id).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *ModuleRepository) Update(module *model.CourseModule) error {
	return r.DB.Save(module).Error
}

func (r *ModuleRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseModule{}).Count(&count).Error
	return count, err
}

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

func (r *CompletionRepository) Create(completion *model.ModuleCompletion) error {
	return r.DB.Create(completion).Error
}

// FindByUser returns completions in completion order (insertion
// order, preserved by the autoincrement id).
func (r *CompletionRepository) FindByUser(userID string) ([]model.ModuleCompletion, error) {
	var completions []model.ModuleCompletion
	err := r.DB.Where("user_id = ?", userID).Order("id ASC").Find(&completions).Error
	return completions, err
}

func (r *CompletionRepository) Exists(userID string, moduleID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ModuleCompletion{}).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Count(&count).Error
	return count > 0, err
}

func (r *CompletionRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ModuleCompletion{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
