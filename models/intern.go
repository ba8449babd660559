package models

// Values stored for a new intern registered without instansi or kategori.
const (
	DefaultInstansi = "Intern"
	DefaultKategori = "Unknown"
)

// Intern is a registered identity. Kategori selects the work schedule.
type Intern struct {
	Id       int64  `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Instansi string `gorm:"column:instansi" json:"instansi"`
	Kategori string `gorm:"column:kategori" json:"kategori"`
}

func (Intern) TableName() string {
	return "interns"
}
