package model

import "gorm.io/gorm"

// Topic is a node in the (informational) topic hierarchy.
type Topic struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;not null;size:100"`
	ParentID *uint
	Parent   *Topic `gorm:"foreignKey:ParentID"`
}

// Principle is a named principle owned by a topic.
type Principle struct {
	gorm.Model
	Name    string `gorm:"uniqueIndex;not null;size:100"`
	TopicID uint   `gorm:"index;not null"`
	Topic   *Topic `gorm:"foreignKey:TopicID"`
}

// PrincipleContrast records a directed contrasts-with edge between two
// principles. Queries treat either direction as contrasting.
type PrincipleContrast struct {
	gorm.Model
	PrincipleID     uint       `gorm:"index:idx_contrast_pair,unique;not null"`
	Principle       *Principle `gorm:"foreignKey:PrincipleID"`
	ContrastsWithID uint       `gorm:"index:idx_contrast_pair,unique;not null"`
	ContrastsWith   *Principle `gorm:"foreignKey:ContrastsWithID"`
}
