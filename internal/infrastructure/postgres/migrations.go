package postgres

// migrations maps version numbers to schema statements. Versions are
// applied in ascending order and recorded in schema_migrations.
var migrations = map[int]string{
	1: `
		CREATE TABLE IF NOT EXISTS foods (
			id            TEXT PRIMARY KEY,
			name_he       TEXT NOT NULL,
			name_en       TEXT NOT NULL DEFAULT '',
			brand         TEXT NOT NULL DEFAULT '',
			calories      DOUBLE PRECISION NOT NULL,
			protein       DOUBLE PRECISION NOT NULL,
			carbs         DOUBLE PRECISION NOT NULL,
			fat           DOUBLE PRECISION NOT NULL,
			fiber         DOUBLE PRECISION NOT NULL DEFAULT 0,
			serving_size  DOUBLE PRECISION NOT NULL,
			serving_unit  TEXT NOT NULL,
			source        TEXT NOT NULL DEFAULT 'user',
			verified      BOOLEAN NOT NULL DEFAULT FALSE,
			usda_id       TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_foods_name_he ON foods (LOWER(name_he));
		CREATE INDEX IF NOT EXISTS idx_foods_name_en ON foods (LOWER(name_en));
	`,
	2: `
		CREATE TABLE IF NOT EXISTS meals (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			name        TEXT NOT NULL DEFAULT '',
			meal_type   TEXT NOT NULL DEFAULT '',
			parsed_text TEXT NOT NULL DEFAULT '',
			calories    DOUBLE PRECISION NOT NULL,
			protein     DOUBLE PRECISION NOT NULL,
			carbs       DOUBLE PRECISION NOT NULL,
			fat         DOUBLE PRECISION NOT NULL,
			fiber       DOUBLE PRECISION NOT NULL DEFAULT 0,
			eaten_at    TIMESTAMPTZ NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_meals_user_day ON meals (user_id, eaten_at);
	`,
	3: `
		CREATE TABLE IF NOT EXISTS meal_items (
			id        TEXT PRIMARY KEY,
			meal_id   TEXT NOT NULL REFERENCES meals(id) ON DELETE CASCADE,
			food_id   TEXT NOT NULL REFERENCES foods(id),
			quantity  DOUBLE PRECISION NOT NULL,
			unit      TEXT NOT NULL,
			calories  DOUBLE PRECISION NOT NULL,
			protein   DOUBLE PRECISION NOT NULL,
			carbs     DOUBLE PRECISION NOT NULL,
			fat       DOUBLE PRECISION NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_meal_items_meal ON meal_items (meal_id);
	`,
}
