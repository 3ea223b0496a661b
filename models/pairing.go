package models

import "time"

// Pairing binds one user account to one physical device and the plant it
// monitors. The uniqueIndex on UserID is what enforces "one device per
// account"; writes replace the whole row. UpdatedAt is persisted so a future
// concurrency-control layer can detect stale overwrites.
type Pairing struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	DeviceName string    `json:"device_name" gorm:"not null"`
	DeviceUID  string    `json:"device_uid" gorm:"not null"`
	PlantID    *uint     `json:"plant_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}
