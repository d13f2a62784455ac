package store

// schema is applied on every Open. Statements use IF NOT EXISTS so the
// call is idempotent across restarts.
const schema = `
CREATE TABLE IF NOT EXISTS llm_events (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	provider      TEXT NOT NULL,
	model         TEXT NOT NULL,
	purpose       TEXT NOT NULL DEFAULT '',
	latency_ms    INTEGER NOT NULL DEFAULT 0,
	success       INTEGER NOT NULL DEFAULT 0,
	input_tokens  INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT '',
	request_body  TEXT NOT NULL DEFAULT '',
	response_body TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_llm_events_created_at ON llm_events (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_llm_events_purpose    ON llm_events (purpose);

CREATE TABLE IF NOT EXISTS quizzes (
	id             TEXT PRIMARY KEY,
	created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	source_name    TEXT NOT NULL DEFAULT '',
	language       TEXT NOT NULL DEFAULT 'English',
	question_count INTEGER NOT NULL DEFAULT 0,
	payload        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quizzes_created_at ON quizzes (created_at DESC);
`
