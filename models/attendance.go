package models

import "time"

// AttendanceLog is one IN/OUT event. Name, instansi and kategori are
// snapshots taken at write time. AbsentAt is local wall clock without zone.
type AttendanceLog struct {
	LogId      int64     `gorm:"column:log_id;primaryKey" json:"log_id"`
	InternId   *int64    `gorm:"column:intern_id" json:"intern_id"`
	InternName string    `gorm:"column:intern_name" json:"intern_name"`
	Instansi   string    `gorm:"column:instansi" json:"instansi"`
	Kategori   string    `gorm:"column:kategori" json:"kategori"`
	ImageURL   string    `gorm:"column:image_url" json:"image_url"`
	AbsentAt   time.Time `gorm:"column:absent_at" json:"absent_at"`
	Type       Direction `gorm:"column:type" json:"type"`
}

func (AttendanceLog) TableName() string {
	return "attendance_logs"
}
