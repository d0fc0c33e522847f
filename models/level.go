package models

import "gorm.io/gorm"

// Level is a difficulty label attachable to a set
type Level struct {
	gorm.Model
	Name string `gorm:"unique;not null;size:100"`
}
