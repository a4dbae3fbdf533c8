package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type DeviceCheckin struct {
	DeviceID         string    `json:"device_id"`
	Slot             int       `json:"slot"`
	SavedStateWrites int64     `json:"saved_state_writes"`
	LastETag         string    `json:"last_etag"`
	NotModified      bool      `json:"not_modified"`
	LastSeen         time.Time `json:"last_seen"`
}

func initDB(filepath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", filepath)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases shared and writes serialized.
	db.SetMaxOpenConns(1)

	// Create devices table
	devicesTable := `
	CREATE TABLE IF NOT EXISTS devices (
		device_id TEXT PRIMARY KEY,
		slot INTEGER NOT NULL,
		saved_state_writes INTEGER NOT NULL DEFAULT 0,
		last_etag TEXT NOT NULL,
		not_modified INTEGER NOT NULL DEFAULT 0,
		last_seen DATETIME NOT NULL
	);`
	if _, err := db.Exec(devicesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create devices table: %w", err)
	}

	return db, nil
}

func recordCheckin(db *sql.DB, c DeviceCheckin) error {
	_, err := db.Exec(`
	INSERT INTO devices (device_id, slot, saved_state_writes, last_etag, not_modified, last_seen)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(device_id) DO UPDATE SET
		slot = excluded.slot,
		saved_state_writes = excluded.saved_state_writes,
		last_etag = excluded.last_etag,
		not_modified = excluded.not_modified,
		last_seen = excluded.last_seen`,
		c.DeviceID, c.Slot, c.SavedStateWrites, c.LastETag, c.NotModified, c.LastSeen.UTC())
	return err
}

func listCheckins(db *sql.DB) ([]DeviceCheckin, error) {
	rows, err := db.Query("SELECT device_id, slot, saved_state_writes, last_etag, not_modified, last_seen FROM devices ORDER BY last_seen DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkins := []DeviceCheckin{}
	for rows.Next() {
		var c DeviceCheckin
		if err := rows.Scan(&c.DeviceID, &c.Slot, &c.SavedStateWrites, &c.LastETag, &c.NotModified, &c.LastSeen); err != nil {
			return nil, err
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}
