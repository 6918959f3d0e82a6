package state

import "database/sql"

// Settings are the player settings restored at startup.
type Settings struct {
	Volume int
	Speed  float64
}

func getSettings(db *sql.DB) (*Settings, error) {
	var s Settings
	err := db.QueryRow(`SELECT volume, speed FROM player_settings WHERE id = 1`).Scan(&s.Volume, &s.Speed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func saveSettings(db *sql.DB, s Settings) error {
	_, err := db.Exec(`
		INSERT INTO player_settings (id, volume, speed)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			speed = excluded.speed
	`, s.Volume, s.Speed)
	return err
}
