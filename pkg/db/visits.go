package db

import (
	"time"

	"github.com/basalt-io/basalt-cms/pkg/model"
)

func (d *database) CreateVisit(v *Visit) error {
	sql := d.db.Create(v)
	return sql.Error
}

func (d *database) CountVisits() (int64, error) {
	var n int64
	sql := d.db.Model(&Visit{}).Count(&n)
	return n, sql.Error
}

func (d *database) CountUniqueVisitors() (int64, error) {
	var n int64
	sql := d.db.Model(&Visit{}).Distinct("ip_address").Count(&n)
	return n, sql.Error
}

func (d *database) CountUniqueVisitorsSince(since time.Time) (int64, error) {
	var n int64
	sql := d.db.Model(&Visit{}).Where("created_at >= ?", since).Distinct("ip_address").Count(&n)
	return n, sql.Error
}

// CountryBreakdown groups geolocated visits by country and counts
// distinct visitor IPs per group. Ties order by country code so the
// output is stable.
func (d *database) CountryBreakdown(limit int) ([]model.CountryStat, error) {
	var stats []model.CountryStat
	sql := d.db.Model(&Visit{}).
		Select("country_code, country_name, count(distinct ip_address) as visitor_count").
		Where("country_code IS NOT NULL").
		Group("country_code, country_name").
		Order("visitor_count desc, country_code asc").
		Limit(limit).
		Scan(&stats)
	return stats, sql.Error
}

func (d *database) RecentVisits(limit int) ([]Visit, error) {
	var visits []Visit
	sql := d.db.Order("created_at desc").Limit(limit).Find(&visits)
	return visits, sql.Error
}

func (d *database) PurgeVisitsBefore(cutoff time.Time) (int64, error) {
	sql := d.db.Where("created_at < ?", cutoff).Delete(&Visit{})
	return sql.RowsAffected, sql.Error
}
