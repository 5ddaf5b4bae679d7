package models

// SongRecord is the single JSON object stored in a song-metadata file.
// Both ids key dimension rows and must be present.
type SongRecord struct {
	NumSongs        int      `json:"num_songs"`
	ArtistID        string   `json:"artist_id" validate:"required"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
	ArtistLocation  *string  `json:"artist_location"`
	ArtistName      *string  `json:"artist_name"`
	SongID          string   `json:"song_id" validate:"required"`
	Title           *string  `json:"title"`
	Duration        *float64 `json:"duration"`
	Year            *int     `json:"year"`
}

// Song is a row of the songs dimension.
type Song struct {
	ID       string
	Title    *string
	ArtistID string
	Year     *int
	Duration *float64
}

// Args returns the songs insert tuple: id, title, artist_id, year, duration.
func (s *Song) Args() []any {
	return []any{s.ID, s.Title, s.ArtistID, s.Year, s.Duration}
}

// Artist is a row of the artists dimension.
type Artist struct {
	ID        string
	Name      *string
	Location  *string
	Latitude  *float64
	Longitude *float64
}

// Args returns the artists insert tuple: id, name, location, latitude, longitude.
func (a *Artist) Args() []any {
	return []any{a.ID, a.Name, a.Location, a.Latitude, a.Longitude}
}

// Song projects the record onto the songs dimension.
func (r *SongRecord) Song() *Song {
	return &Song{
		ID:       r.SongID,
		Title:    r.Title,
		ArtistID: r.ArtistID,
		Year:     r.Year,
		Duration: r.Duration,
	}
}

// Artist projects the record onto the artists dimension.
func (r *SongRecord) Artist() *Artist {
	return &Artist{
		ID:        r.ArtistID,
		Name:      r.ArtistName,
		Location:  r.ArtistLocation,
		Latitude:  r.ArtistLatitude,
		Longitude: r.ArtistLongitude,
	}
}
