package tenant

import "gorm.io/gorm"

// Scope restricts a query to a single company. Every repository query that
// touches tenant-owned rows goes through this.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
