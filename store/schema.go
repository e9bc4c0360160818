package store

const Schema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// Record keys. The projection and logs records hold JSON documents; pref
// keys hold single scalar values.
const (
	KeyProjection = "projection"
	KeyLogs       = "logs"

	PrefLastLot        = "pref.last_lot"
	PrefLastCommission = "pref.last_commission"
	PrefTheme          = "pref.theme"
	PrefLocale         = "pref.locale"
)

// Prefs lists the preference keys SetPref accepts.
var Prefs = []string{PrefLastLot, PrefLastCommission, PrefTheme, PrefLocale}
