package repository

import (
	"vigil/internal/models"

	"gorm.io/gorm"
)

type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) Create(s *models.Site) error {
	return r.db.Create(s).Error
}

func (r *SiteRepository) Update(s *models.Site) error {
	return r.db.Save(s).Error
}

func (r *SiteRepository) GetByID(id uint) (*models.Site, error) {
	var s models.Site
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepository) ListByCompany(companyID uint) ([]models.Site, error) {
	var list []models.Site
	err := r.db.Where("company_id = ?", companyID).Order("name").Find(&list).Error
	return list, err
}

func (r *SiteRepository) ListByClient(clientID uint) ([]models.Site, error) {
	var list []models.Site
	err := r.db.Where("client_id = ?", clientID).Order("name").Find(&list).Error
	return list, err
}

// HasShifts reports whether any shift references the site. Sites with shift
// history are deactivated instead of deleted.
func (r *SiteRepository) HasShifts(siteID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Shift{}).Where("site_id = ?", siteID).Count(&count).Error
	return count > 0, err
}

func (r *SiteRepository) Deactivate(siteID uint) error {
	return r.db.Model(&models.Site{}).Where("id = ?", siteID).Update("is_active", false).Error
}

func (r *SiteRepository) Delete(siteID uint) error {
	return r.db.Delete(&models.Site{}, siteID).Error
}

// ActiveShiftSites returns the sites of a guard's IN_PROGRESS shifts, for
// geofence evaluation against a new sample.
func (r *SiteRepository) ActiveShiftSites(guardID uint) ([]models.Site, error) {
	var list []models.Site
	err := r.db.
		Joins("JOIN shifts ON shifts.site_id = sites.id").
		Where("shifts.guard_id = ? AND shifts.status = ? AND shifts.deleted_at IS NULL", guardID, "IN_PROGRESS").
		Where("sites.is_active = ?", true).
		Find(&list).Error
	return list, err
}
