// Package sql holds the star-schema statement catalog and the checks that keep it honest.
package sql

// Table names of the star schema.
const (
	SongplaysTable = "songplays"
	UsersTable     = "users"
	SongsTable     = "songs"
	ArtistsTable   = "artists"
	TimesTable     = "times"
)

// DROP TABLES

const (
	SongplayTableDrop = `DROP TABLE IF EXISTS songplays;`
	UserTableDrop     = `DROP TABLE IF EXISTS users;`
	SongTableDrop     = `DROP TABLE IF EXISTS songs;`
	ArtistTableDrop   = `DROP TABLE IF EXISTS artists;`
	TimeTableDrop     = `DROP TABLE IF EXISTS times;`
)

// CREATE TABLES

const SongplayTableCreate = `
CREATE TABLE IF NOT EXISTS songplays (
  "id" SERIAL PRIMARY KEY,
  "start_time" TIMESTAMP REFERENCES times(start_time),
  "user_id" INT REFERENCES users(id) NOT NULL,
  "level" VARCHAR NOT NULL,
  "song_id" VARCHAR REFERENCES songs(id),
  "artist_id" VARCHAR REFERENCES artists(id),
  "session_id" INT NOT NULL,
  "location" VARCHAR NOT NULL,
  "user_agent" VARCHAR NOT NULL
);`

const UserTableCreate = `
CREATE TABLE IF NOT EXISTS users (
  "id" INT UNIQUE NOT NULL,
  "first_name" VARCHAR,
  "last_name" VARCHAR,
  "gender" CHAR(1),
  "level" VARCHAR
);`

const SongTableCreate = `
CREATE TABLE IF NOT EXISTS songs (
  "id" VARCHAR UNIQUE NOT NULL,
  "title" VARCHAR,
  "artist_id" VARCHAR,
  "year" INT,
  "duration" NUMERIC
);`

const ArtistTableCreate = `
CREATE TABLE IF NOT EXISTS artists (
  "id" VARCHAR UNIQUE NOT NULL,
  "name" VARCHAR,
  "location" VARCHAR,
  "latitude" NUMERIC,
  "longitude" NUMERIC
);`

const TimeTableCreate = `
CREATE TABLE IF NOT EXISTS times (
  "start_time" TIMESTAMP UNIQUE NOT NULL,
  "hour" INT,
  "day" INT,
  "week" INT,
  "month" INT,
  "year" INT,
  "weekday" VARCHAR
);`

// INSERT RECORDS
//
// Placeholder order is positional and must match the tuple built by the
// corresponding model's Args method.

// UserTableInsert updates only level when the user already exists.
const UserTableInsert = `
INSERT INTO users (id, first_name, last_name,
                   gender, level)
VALUES ($1, $2, $3,
        $4, $5)
ON CONFLICT (id)
DO UPDATE
SET level = EXCLUDED.level;`

const SongTableInsert = `
INSERT INTO songs (id, title, artist_id,
                   year, duration)
VALUES ($1, $2, $3,
        $4, $5)
ON CONFLICT (id)
DO NOTHING;`

const ArtistTableInsert = `
INSERT INTO artists (id, name, location,
                     latitude, longitude)
VALUES ($1, $2, $3,
        $4, $5)
ON CONFLICT (id)
DO NOTHING;`

const TimeTableInsert = `
INSERT INTO times (start_time, hour, day,
                   week, month, year, weekday)
VALUES ($1, $2, $3,
        $4, $5, $6, $7)
ON CONFLICT (start_time)
DO NOTHING;`

// SongplayTableInsert has no conflict target: songplays are append-only.
const SongplayTableInsert = `
INSERT INTO songplays (start_time, user_id, level,
                       song_id, artist_id, session_id,
                       location, user_agent)
VALUES ($1, $2, $3,
        $4, $5, $6,
        $7, $8);`

// FIND SONGS

// SongSelect resolves (title, artist name, duration) to a song and artist id.
const SongSelect = `
SELECT
    s.id song_id,
    a.id artist_id
FROM songs s
LEFT JOIN artists a
    ON s.artist_id = a.id
WHERE s.title = ($1)
AND a.name = ($2)
AND s.duration = ($3);`

// QUERY LISTS

// CreateTableQueries is ordered so that every table referenced by a foreign key
// exists before the table that references it.
var CreateTableQueries = []string{
	UserTableCreate,
	SongTableCreate,
	ArtistTableCreate,
	TimeTableCreate,
	SongplayTableCreate,
}

// DropTableQueries is the inverse: the referencing table goes first.
var DropTableQueries = []string{
	SongplayTableDrop,
	UserTableDrop,
	SongTableDrop,
	ArtistTableDrop,
	TimeTableDrop,
}

// TableNames lists every table in creation order.
var TableNames = []string{
	UsersTable,
	SongsTable,
	ArtistsTable,
	TimesTable,
	SongplaysTable,
}

// insertArity is the number of bound parameters each parameterized statement expects.
var insertArity = map[string]int{
	"users insert":     5,
	"songs insert":     5,
	"artists insert":   5,
	"times insert":     7,
	"songplays insert": 8,
	"song select":      3,
}

// parameterized maps catalog names to statements for ValidateCatalog.
var parameterized = map[string]string{
	"users insert":     UserTableInsert,
	"songs insert":     SongTableInsert,
	"artists insert":   ArtistTableInsert,
	"times insert":     TimeTableInsert,
	"songplays insert": SongplayTableInsert,
	"song select":      SongSelect,
}
