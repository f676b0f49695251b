package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

const schemaVersionTable = `CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
)`

// postgresMigrations is the ordered list of PostgreSQL schema migrations.
// Each migration's version must be sequential starting from 1.
var postgresMigrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS lists (
	id                   TEXT PRIMARY KEY,
	title                TEXT NOT NULL DEFAULT '',
	theme                TEXT,
	hide_completed       BOOLEAN NOT NULL DEFAULT FALSE,
	compact              BOOLEAN NOT NULL DEFAULT FALSE,
	is_template          BOOLEAN NOT NULL DEFAULT FALSE,
	template_category    TEXT,
	description          TEXT NOT NULL DEFAULT '',
	status               TEXT NOT NULL DEFAULT ''
		CHECK (status IN ('', 'draft', 'pending', 'approved', 'rejected')),
	use_count            INTEGER NOT NULL DEFAULT 0,
	language             TEXT NOT NULL DEFAULT '',
	translation_group_id TEXT,
	creator_name         TEXT NOT NULL DEFAULT '',
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS items (
	id         TEXT PRIMARY KEY,
	list_id    TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	completed  BOOLEAN NOT NULL DEFAULT FALSE,
	parent_id  TEXT REFERENCES items(id) ON DELETE SET NULL,
	position   INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_items_list_parent_position
	ON items(list_id, parent_id, position);
CREATE INDEX IF NOT EXISTS idx_lists_template_status
	ON lists(is_template, status);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_lists_translation_group
	ON lists(translation_group_id);
CREATE INDEX IF NOT EXISTS idx_lists_template_gallery
	ON lists(template_category, language, use_count DESC)
	WHERE is_template AND status = 'approved';
`,
	},
}

// sqliteMigrations mirrors postgresMigrations for the local SQLite backend.
var sqliteMigrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS lists (
	id                   TEXT PRIMARY KEY,
	title                TEXT NOT NULL DEFAULT '',
	theme                TEXT,
	hide_completed       INTEGER NOT NULL DEFAULT 0 CHECK(hide_completed IN (0, 1)),
	compact              INTEGER NOT NULL DEFAULT 0 CHECK(compact IN (0, 1)),
	is_template          INTEGER NOT NULL DEFAULT 0 CHECK(is_template IN (0, 1)),
	template_category    TEXT,
	description          TEXT NOT NULL DEFAULT '',
	status               TEXT NOT NULL DEFAULT ''
		CHECK(status IN ('', 'draft', 'pending', 'approved', 'rejected')),
	use_count            INTEGER NOT NULL DEFAULT 0,
	language             TEXT NOT NULL DEFAULT '',
	translation_group_id TEXT,
	creator_name         TEXT NOT NULL DEFAULT '',
	created_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
	id         TEXT PRIMARY KEY,
	list_id    TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	completed  INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	parent_id  TEXT REFERENCES items(id) ON DELETE SET NULL,
	position   INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_list_parent_position
	ON items(list_id, parent_id, position);
CREATE INDEX IF NOT EXISTS idx_lists_template_status
	ON lists(is_template, status);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_lists_translation_group
	ON lists(translation_group_id);
CREATE INDEX IF NOT EXISTS idx_lists_template_gallery
	ON lists(template_category, language, use_count DESC);
`,
	},
}
